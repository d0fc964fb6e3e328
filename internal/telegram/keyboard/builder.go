package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback actions
const (
	ActionSession   = "action"
	ActionDownload  = "dl"
	ValueClear      = "clear"
	ValueTranscript = "transcript"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// AnswerKeyboard is attached to every answer
func (b *Builder) AnswerKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧹 Clear table", EncodeCallback(ActionSession, ValueClear)),
			tgbotapi.NewInlineKeyboardButtonData("📄 Transcript", EncodeCallback(ActionSession, ValueTranscript)),
		),
	)
}

// TranscriptFormatKeyboard offers the export formats
func (b *Builder) TranscriptFormatKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Markdown", EncodeCallback(ActionDownload, "markdown")),
			tgbotapi.NewInlineKeyboardButtonData("PDF", EncodeCallback(ActionDownload, "pdf")),
			tgbotapi.NewInlineKeyboardButtonData("DOCX", EncodeCallback(ActionDownload, "docx")),
		),
	)
}

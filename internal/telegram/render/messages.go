package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/resume-assistant/internal/entity"
)

// MaxMessageLength is the Telegram limit for a single text message, in runes
const MaxMessageLength = 4096

const (
	MsgWelcome = `👋 Hi! I help you screen candidates.

1. Send me a CSV file with CandidateID and Resume columns
2. Ask a question like "Who has 5+ years of Python?"
3. I will pick up to 3 matching candidates from the table`

	MsgHelp = `🤖 Commands:

/start - Show the welcome message
/help - Show this help
/clear - Forget the uploaded table
/transcript - Download the conversation

Send a .csv file at any time to replace the current table.`

	MsgIngesting       = `⏳ Indexing %s...`
	MsgCleared         = `🧹 Table removed. Send a new CSV file to continue.`
	MsgSendCSV         = `📎 Please send the candidate table as a .csv document.`
	MsgChooseFormat    = `📄 Choose the transcript format:`
	MsgEmptyTranscript = `📭 Nothing to export yet. Ask a question first.`
)

const (
	ErrGeneric         = `❌ Something went wrong. Please try again.`
	ErrBadCSV          = `❌ The table could not be read: %s`
	ErrNotCSV          = `❌ Only .csv files are supported.`
	ErrFileTooLarge    = `❌ The file is too large.`
	ErrNetworkIssue    = `❌ Connection problem. Please try again later.`
	ErrTimeout         = `❌ The operation took too long. Please try again.`
	ErrSessionNotFound = `❌ Session not found. Send /start to begin again.`
	ErrUnknownCommand  = `❌ Unknown command. Use /help`
)

// RenderIngestReport describes a finished ingestion
func RenderIngestReport(r *entity.IngestReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Indexed %d candidates (%d chunks) from %s.", r.Rows, r.Chunks, strings.Join(r.Files, ", "))
	if len(r.DroppedColumns) > 0 {
		fmt.Fprintf(&b, "\nColumns with nested values were skipped: %s.", strings.Join(r.DroppedColumns, ", "))
	}
	b.WriteString("\n\nNow ask me about the candidates.")
	return b.String()
}

// RenderBadCSV explains why a table was rejected
func RenderBadCSV(err error) string {
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, entity.ErrBadInput.Error()+": "); ok {
		msg = after
	}
	return fmt.Sprintf(ErrBadCSV, msg)
}

// SplitMessage cuts text into parts no longer than MaxMessageLength runes,
// preferring line breaks as cut points.
func SplitMessage(text string) []string {
	if utf8.RuneCountInString(text) <= MaxMessageLength {
		return []string{text}
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > MaxMessageLength {
		cut := MaxMessageLength
		for i := MaxMessageLength - 1; i > MaxMessageLength/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

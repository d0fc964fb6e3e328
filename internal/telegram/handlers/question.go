package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/resume-assistant/internal/pkg/logger"
	"github.com/futig/resume-assistant/internal/telegram/keyboard"
	"github.com/futig/resume-assistant/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// QuestionHandler answers free-text questions about the uploaded candidates
type QuestionHandler struct {
	BaseHandler
	api      Requester
	keyboard *keyboard.Builder
	logger   *zap.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(
	api Requester,
	sender Sender,
	sessions SessionManager,
	keyboard *keyboard.Builder,
	logger *zap.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: BaseHandler{
			kind:     HandlerKindText,
			sender:   sender,
			sessions: sessions,
		},
		api:      api,
		keyboard: keyboard,
		logger:   logger,
	}
}

// Handle implements Handler
func (h *QuestionHandler) Handle(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "telegram.question")

	query := strings.TrimSpace(msg.Text)
	if query == "" {
		return nil
	}

	s, err := h.session(ctx, msg.ChatID)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}

	typing := NewTypingNotifier(h.api, msg.ChatID, tgbotapi.ChatTyping, h.logger)
	typing.Start(ctx)
	answer, err := s.AskAsync(ctx, query).Await(ctx)
	typing.Stop()

	if err != nil {
		// the answer is still worth showing when only saving the transcript failed
		if answer == "" {
			h.HandleError(ctx, msg.ChatID, err)
			return nil
		}
		h.logger.Warn("answer not saved to transcript", zap.Error(err))
	}

	parts := render.SplitMessage(answer)
	for i, part := range parts {
		var markup interface{}
		if i == len(parts)-1 {
			markup = h.keyboard.AnswerKeyboard()
		}
		h.sendMessage(msg.ChatID, part, markup)
	}

	return nil
}

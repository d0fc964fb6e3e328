package handlers

import (
	"context"
	"fmt"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/pkg/formatter"
	"github.com/futig/resume-assistant/internal/pkg/logger"
	"github.com/futig/resume-assistant/internal/telegram/keyboard"
	"github.com/futig/resume-assistant/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles inline button clicks
type CallbackHandler struct {
	BaseHandler
	keyboard   *keyboard.Builder
	formatters *formatter.Factory
	logger     *zap.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(
	sender Sender,
	sessions SessionManager,
	keyboard *keyboard.Builder,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			kind:     HandlerKindCallback,
			sender:   sender,
			sessions: sessions,
		},
		keyboard:   keyboard,
		formatters: formatter.NewFactory(),
		logger:     logger,
	}
}

// Handle implements Handler
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return err
	}

	ctx = logger.AddFields(ctx,
		zap.String("action", "telegram.callback"),
		zap.String("callback", msg.CallbackData),
	)

	switch {
	case data.Action == keyboard.ActionSession && data.Value == keyboard.ValueClear:
		return h.handleClear(ctx, msg)
	case data.Action == keyboard.ActionSession && data.Value == keyboard.ValueTranscript:
		h.sendMessage(msg.ChatID, render.MsgChooseFormat, h.keyboard.TranscriptFormatKeyboard())
		return nil
	case data.Action == keyboard.ActionDownload:
		return h.handleDownload(ctx, msg, entity.ResultFormat(data.Value))
	default:
		return fmt.Errorf("unknown callback %q", msg.CallbackData)
	}
}

// handleClear drops the chat's index
func (h *CallbackHandler) handleClear(ctx context.Context, msg *Message) error {
	s, err := h.session(ctx, msg.ChatID)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}

	if err := s.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	ctxzap.Info(ctx, "table cleared", zap.String("session_id", s.ID()))
	h.sendMessage(msg.ChatID, render.MsgCleared, nil)
	return nil
}

// handleDownload sends the transcript rendered in format
func (h *CallbackHandler) handleDownload(ctx context.Context, msg *Message, format entity.ResultFormat) error {
	fmtr, err := h.formatters.Create(format)
	if err != nil {
		return err
	}

	s, err := h.session(ctx, msg.ChatID)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}

	turns, err := s.Transcript(ctx)
	if err != nil {
		return err
	}

	if len(turns) == 0 {
		h.sendMessage(msg.ChatID, render.MsgEmptyTranscript, nil)
		return nil
	}

	body, err := fmtr.Format(turns)
	if err != nil {
		return fmt.Errorf("format transcript: %w", err)
	}

	filename := "transcript" + fmtr.FileExtension()
	if h.sender != nil {
		return h.sender.SendDocument(msg.ChatID, filename, body)
	}
	return nil
}

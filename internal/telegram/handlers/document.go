package handlers

import (
	"context"
	"fmt"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/pkg/logger"
	"github.com/futig/resume-assistant/internal/pkg/validator"
	"github.com/futig/resume-assistant/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DocumentHandler replaces the chat's candidate table with an uploaded CSV
type DocumentHandler struct {
	BaseHandler
	api        Requester
	downloader FileDownloader
	validator  *validator.Validator
	logger     *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	api Requester,
	sender Sender,
	sessions SessionManager,
	downloader FileDownloader,
	validator *validator.Validator,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler: BaseHandler{
			kind:     HandlerKindDocument,
			sender:   sender,
			sessions: sessions,
		},
		api:        api,
		downloader: downloader,
		validator:  validator,
		logger:     logger,
	}
}

// Handle implements Handler
func (h *DocumentHandler) Handle(ctx context.Context, msg *Message) error {
	ctx = logger.WithAction(ctx, "telegram.document")

	if msg.Document == nil {
		h.sendMessage(msg.ChatID, render.MsgSendCSV, nil)
		return nil
	}

	filename := validator.SanitizeFilename(msg.Document.FileName)
	if err := h.validator.ValidateFile(filename, int64(msg.Document.FileSize)); err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	h.sendMessage(msg.ChatID, fmt.Sprintf(render.MsgIngesting, filename), nil)

	typing := NewTypingNotifier(h.api, msg.ChatID, tgbotapi.ChatUploadDocument, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	content, err := h.downloader.Download(ctx, msg.Document.FileID)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, fmt.Errorf("download %s: %w", filename, err))
		return nil
	}

	s, err := h.session(ctx, msg.ChatID)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}

	files := []entity.FileData{{Filename: filename, Content: content}}
	report, err := s.IngestAsync(ctx, files).Await(ctx)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "table ingested",
		zap.String("session_id", s.ID()),
		zap.Int("rows", report.Rows),
		zap.Int("chunks", report.Chunks),
	)

	h.sendMessage(msg.ChatID, render.RenderIngestReport(report), nil)
	return nil
}

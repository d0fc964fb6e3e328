package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/pkg/formatter"
	"github.com/futig/resume-assistant/internal/pkg/logger"
	"github.com/futig/resume-assistant/internal/pkg/response"
	"github.com/futig/resume-assistant/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	sessions      SessionManager
	validator     *validator.Validator
	formatters    *formatter.Factory
	maxUploadSize int64
}

func NewHandler(
	sessions SessionManager,
	validator *validator.Validator,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sessions:      sessions,
		validator:     validator,
		formatters:    formatter.NewFactory(),
		maxUploadSize: maxUploadSize,
	}
}

// CreateSession handles POST /sessions - Start new session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSession")

	s, err := h.sessions.Create(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session created", zap.String("session_id", s.ID()))
	response.Created(w, entity.CreateSessionResponse{ID: s.ID()})
}

// GetSession handles GET /sessions/{id} - Get session summary
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "GetSession"), sessionID)

	ctxzap.Debug(ctx, "fetching session")

	s, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	info, err := s.Info(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, info)
}

// DeleteSession handles DELETE /sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "DeleteSession"), sessionID)

	if err := h.sessions.Delete(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, entity.DeleteSessionResponse{Status: "deleted"})
}

// UploadFiles handles POST /sessions/{id}/files - Replace the session index with the uploaded tables
func (h *Handler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "UploadFiles"), sessionID)

	s, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to parse form", err)
		return
	}

	files := r.MultipartForm.File["files"]
	if err := h.validator.ValidateUpload(files); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	fileData, err := toFileData(files)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to read files", err)
		return
	}

	ctxzap.Info(ctx, "ingesting files", zap.Int("count", len(fileData)))

	report, err := s.IngestAsync(ctx, fileData).Await(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "files ingested",
		zap.Int("rows", report.Rows),
		zap.Int("chunks", report.Chunks),
	)
	h.respondJSON(w, http.StatusOK, report)
}

// Ask handles POST /sessions/{id}/ask
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "Ask"), sessionID)

	var req entity.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateAsk(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	s, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	answer, err := s.AskAsync(ctx, req.Query).Await(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, entity.AskResponse{Answer: answer})
}

// Clear handles POST /sessions/{id}/clear - Drop the session index
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "Clear"), sessionID)

	s, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if err := s.Clear(ctx); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session index cleared")
	response.NoContent(w)
}

// ListMessages handles GET /sessions/{id}/messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "ListMessages"), sessionID)

	s, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	turns, err := s.Transcript(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toListTurnsResponse(turns))
}

// GetTranscript handles GET /sessions/{id}/transcript - Download the conversation
func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "GetTranscript"), sessionID)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = "markdown"
	}

	format := entity.ResultFormat(formatParam)
	if !format.IsValid() {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format parameter",
			fmt.Errorf("format must be one of: markdown, docx, pdf"))
		return
	}

	s, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	turns, err := s.Transcript(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	fmtr, err := h.formatters.Create(format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	body, err := fmtr.Format(turns)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format transcript", err)
		return
	}

	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"transcript-%s%s\"", sessionID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Helper methods
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	response.JSON(w, status, data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrSessionNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "session not found", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrUnsupportedFormat) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else if errors.Is(err, entity.ErrInvalidExtension) || errors.Is(err, entity.ErrFileTooLarge) || errors.Is(err, entity.ErrTooManyFiles) || errors.Is(err, entity.ErrTotalSizeTooLarge) || errors.Is(err, entity.ErrInvalidFile) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid file", err)
	} else if errors.Is(err, entity.ErrBadInput) {
		h.respondError(ctx, w, http.StatusUnprocessableEntity, err.Error(), err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

package handlers

import (
	"context"
	"errors"
	"net"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/telegram/render"
	pkghttp "github.com/futig/resume-assistant/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// String returns string representation of error severity
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError maps an error to the message shown to the user
func classifyHandlerError(err error) *HandlerError {
	if err == nil {
		return &HandlerError{
			UserMessage: render.ErrGeneric,
			LogMessage:  "unknown error",
			Severity:    SeverityWarning,
		}
	}

	// User mistakes
	switch {
	case errors.Is(err, entity.ErrBadInput):
		return &HandlerError{
			Err:         err,
			UserMessage: render.RenderBadCSV(err),
			LogMessage:  "rejected table",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrInvalidExtension):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrNotCSV,
			LogMessage:  "unsupported file",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrFileTooLarge):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrFileTooLarge,
			LogMessage:  "file too large",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrSessionNotFound):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrSessionNotFound,
			LogMessage:  "session not found",
			Severity:    SeverityWarning,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrTimeout,
			LogMessage:  "operation timed out",
			Severity:    SeverityError,
		}
	}

	var netErr net.Error
	var connErr *pkghttp.NetworkError
	if errors.As(err, &netErr) || errors.As(err, &connErr) {
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrNetworkIssue,
			LogMessage:  "network error",
			Severity:    SeverityError,
		}
	}

	return &HandlerError{
		Err:         err,
		UserMessage: render.ErrGeneric,
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}
}

// HandleError logs err and sends a user-friendly message
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	case SeverityWarning:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	h.sendMessage(chatID, handlerErr.UserMessage, nil)
}

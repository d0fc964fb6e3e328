package handlers

import (
	"context"

	"github.com/futig/resume-assistant/internal/usecase/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SessionManager resolves the session of a chat
type SessionManager interface {
	GetOrCreate(ctx context.Context, key string) (*session.Session, error)
}

// Sender delivers messages to a chat
type Sender interface {
	Send(chatID int64, text string, markup interface{}) error
	SendDocument(chatID int64, filename string, data []byte) error
}

// Requester sends raw Bot API requests such as chat actions
type Requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// FileDownloader fetches the content of an uploaded document
type FileDownloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

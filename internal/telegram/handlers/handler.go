package handlers

import (
	"context"
	"fmt"

	"github.com/futig/resume-assistant/internal/usecase/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Handler kind constants
const (
	HandlerKindCallback = "CALLBACK"
	HandlerKindDocument = "DOCUMENT"
	HandlerKindText     = "TEXT"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	Document     *tgbotapi.Document
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for update handlers
type Handler interface {
	// Handle processes a message of this kind
	Handle(ctx context.Context, msg *Message) error

	// GetKind returns the kind of update this handler manages
	GetKind() string
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	kind     string
	sender   Sender
	sessions SessionManager
}

// GetKind implements Handler
func (h *BaseHandler) GetKind() string {
	return h.kind
}

// sendMessage is a convenience wrapper for sender.Send
func (h *BaseHandler) sendMessage(chatID int64, text string, markup interface{}) {
	if h.sender != nil {
		h.sender.Send(chatID, text, markup)
	}
}

// session returns the session bound to the chat
func (h *BaseHandler) session(ctx context.Context, chatID int64) (*session.Session, error) {
	return h.sessions.GetOrCreate(ctx, SessionKey(chatID))
}

// SessionKey maps a chat to its session
func SessionKey(chatID int64) string {
	return fmt.Sprintf("telegram:%d", chatID)
}

var validKinds = map[string]bool{
	HandlerKindCallback: true,
	HandlerKindDocument: true,
	HandlerKindText:     true,
}

// IsValidKind checks if a kind is valid for handler registration
func IsValidKind(kind string) bool {
	_, ok := validKinds[kind]
	return ok
}

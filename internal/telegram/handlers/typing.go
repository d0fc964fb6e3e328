package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// typingInterval is shorter than the 5s lifetime of a chat action
const typingInterval = 4 * time.Second

// TypingNotifier keeps a chat action visible while a long operation runs
type TypingNotifier struct {
	bot     Requester
	chatID  int64
	action  string
	done    chan struct{}
	logger  *zap.Logger
	started bool
}

// NewTypingNotifier creates a notifier for action, e.g. tgbotapi.ChatTyping
func NewTypingNotifier(bot Requester, chatID int64, action string, logger *zap.Logger) *TypingNotifier {
	return &TypingNotifier{
		bot:    bot,
		chatID: chatID,
		action: action,
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Start sends the action now and then every typingInterval until Stop or ctx is done
func (t *TypingNotifier) Start(ctx context.Context) {
	if t.started || t.bot == nil {
		return
	}
	t.started = true

	t.send()

	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.send()
			case <-t.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops sending chat actions
func (t *TypingNotifier) Stop() {
	if !t.started {
		return
	}

	close(t.done)
	t.started = false
}

func (t *TypingNotifier) send() {
	if _, err := t.bot.Request(tgbotapi.NewChatAction(t.chatID, t.action)); err != nil {
		t.logger.Warn("failed to send chat action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
			zap.String("action", t.action),
		)
	}
}

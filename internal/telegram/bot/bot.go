package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/resume-assistant/internal/config"
	"github.com/futig/resume-assistant/internal/telegram/handlers"
	"github.com/futig/resume-assistant/internal/telegram/keyboard"
	"github.com/futig/resume-assistant/internal/telegram/middleware"
	"github.com/futig/resume-assistant/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	handlers    map[string]handlers.Handler
	sender      *handlers.MessageSender
	keyboard    *keyboard.Builder
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(cfg *config.TelegramConfig, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:      api,
		cfg:      cfg,
		sender:   handlers.NewMessageSender(api, logger),
		keyboard: keyboard.NewBuilder(),
		logger:   logger,
		handlers: make(map[string]handlers.Handler),
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, bot.sendError)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		bot.sendError,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(ctx, u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(ctx, u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Text:      message.Text,
		Document:  message.Document,
	}
	if message.From != nil {
		msg.UserID = message.From.ID
	}

	kind := handlers.HandlerKindText
	if message.Document != nil {
		kind = handlers.HandlerKindDocument
	}

	b.dispatch(ctx, kind, msg)
}

// dispatch hands msg to the handler registered for kind
func (b *Bot) dispatch(ctx context.Context, kind string, msg *handlers.Message) {
	handler, exists := b.handlers[kind]
	if !exists {
		ctxzap.Warn(ctx, "no handler registered", zap.String("kind", kind))
		b.sendError(msg.ChatID, render.ErrGeneric)
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("kind", kind),
			zap.Int64("chat_id", msg.ChatID),
		)
		b.sendError(msg.ChatID, render.ErrGeneric)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	chatID := message.Chat.ID

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("chat_id", chatID),
	)

	switch command {
	case "start":
		b.sendMessage(chatID, render.MsgWelcome, nil)
	case "help":
		b.sendMessage(chatID, render.MsgHelp, nil)
	case "clear":
		b.dispatch(ctx, handlers.HandlerKindCallback, &handlers.Message{
			ChatID:       chatID,
			CallbackData: keyboard.EncodeCallback(keyboard.ActionSession, keyboard.ValueClear),
		})
	case "transcript":
		b.sendMessage(chatID, render.MsgChooseFormat, b.keyboard.TranscriptFormatKeyboard())
	default:
		b.sendError(chatID, render.ErrUnknownCommand)
	}
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallback(query.ID, "")
		return
	}

	// Answer right away so Telegram stops the button spinner
	b.answerCallback(query.ID, "⏳")

	b.dispatch(ctx, handlers.HandlerKindCallback, &handlers.Message{
		ChatID:       query.Message.Chat.ID,
		UserID:       query.From.ID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	})
}

// sendMessage sends a message to chat
func (b *Bot) sendMessage(chatID int64, text string, replyMarkup interface{}) {
	b.sender.Send(chatID, text, replyMarkup)
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	b.sender.Send(chatID, text, nil)
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler registers a handler for its kind
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	kind := handler.GetKind()

	if !handlers.IsValidKind(kind) {
		b.logger.Fatal("invalid handler kind",
			zap.String("kind", kind),
		)
	}

	b.handlers[kind] = handler
	b.logger.Info("handler registered",
		zap.String("kind", kind),
	)
}

// GetAPI returns the bot API instance (for handlers)
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetSender returns the message sender (for handlers)
func (b *Bot) GetSender() *handlers.MessageSender {
	return b.sender
}

// GetKeyboard returns the keyboard builder (for handlers)
func (b *Bot) GetKeyboard() *keyboard.Builder {
	return b.keyboard
}

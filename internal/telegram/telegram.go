package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/resume-assistant/internal/config"
	"github.com/futig/resume-assistant/internal/integration/common"
	"github.com/futig/resume-assistant/internal/pkg/validator"
	"github.com/futig/resume-assistant/internal/telegram/bot"
	"github.com/futig/resume-assistant/internal/telegram/handlers"
	pkghttp "github.com/futig/resume-assistant/pkg/http"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	uploadCfg config.FileUploadConfig,
	sessions handlers.SessionManager,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, cfg, uploadCfg, sessions, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, cfg *config.TelegramConfig, uploadCfg config.FileUploadConfig, sessions handlers.SessionManager, logger *zap.Logger) {
	api := b.GetAPI()
	sender := b.GetSender()
	keyboard := b.GetKeyboard()

	downloader := handlers.NewTelegramDownloader(
		api,
		newFileConnector(cfg.DownloadTimeout, logger),
		uploadCfg.MaxFileSize,
	)

	b.RegisterHandler(handlers.NewCallbackHandler(sender, sessions, keyboard, logger))
	b.RegisterHandler(handlers.NewDocumentHandler(api, sender, sessions, downloader, validator.NewFileValidator(uploadCfg), logger))
	b.RegisterHandler(handlers.NewQuestionHandler(api, sender, sessions, keyboard, logger))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 3),
	)
}

// newFileConnector builds the client for Bot API file downloads.
// Request logging stays off: file URLs embed the bot token.
func newFileConnector(timeout time.Duration, logger *zap.Logger) *pkghttp.Connector {
	return pkghttp.NewConnector(
		&pkghttp.ConnectorConfig{Logger: logger},
		pkghttp.WithRequestTimeout(timeout),
		pkghttp.WithResponseHeaderTimeout(timeout),
		pkghttp.WithUserAgent(common.UserAgent),
	)
}

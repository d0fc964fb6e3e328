package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/resume-assistant/internal/api"
	sessionapi "github.com/futig/resume-assistant/internal/api/session"
	"github.com/futig/resume-assistant/internal/config"
	"github.com/futig/resume-assistant/internal/pkg/validator"
	"github.com/futig/resume-assistant/internal/telegram"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	comps, err := buildComponents(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Initialize validators
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)

	// Setup API handlers
	sessionHandler := sessionapi.NewHandler(comps.sessions, fileValidator, cfg.FileUploadCfg.MaxUploadSize)

	// Setup router
	router := api.SetupRouter(sessionHandler, cfg.ServerRequestTimeout, cfg.CORSAllowedOrigins, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  time.Minute,
		WriteTimeout: cfg.ServerRequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:  server,
		cleanup: comps.close,
		logger:  logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, func(), error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	comps, err := buildComponents(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, cfg.FileUploadCfg, comps.sessions, logger)
	if err != nil {
		comps.close()
		return nil, nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, comps.close, nil
}

package builder

import (
	"context"
	"fmt"

	"github.com/futig/resume-assistant/internal/chunker"
	"github.com/futig/resume-assistant/internal/config"
	"github.com/futig/resume-assistant/internal/integration/chat"
	"github.com/futig/resume-assistant/internal/integration/embedding"
	"github.com/futig/resume-assistant/internal/repository"
	"github.com/futig/resume-assistant/internal/usecase/assistant"
	"github.com/futig/resume-assistant/internal/usecase/session"
	"github.com/futig/resume-assistant/internal/vectorstore"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// components are shared by the HTTP server and the Telegram bot
type components struct {
	sessions *session.Manager
	db       *pgxpool.Pool
}

func (c *components) close() {
	if c.db != nil {
		c.db.Close()
	}
}

func buildComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*components, error) {
	turns, db, err := setupTurnRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	splitter, err := chunker.New(cfg.ChunkerCfg.Type, cfg.ChunkerCfg.MaxLength, cfg.ChunkerCfg.Overlap)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("create chunker: %w", err)
	}

	embedder := setupEmbedder(cfg, logger)

	var chatClient assistant.ChatClient
	if cfg.EnableMocks {
		logger.Info("Using mock chat connector")
		chatClient = chat.NewMockConnector(logger)
	} else {
		chatClient = chat.NewConnector(cfg.ChatConnectorCfg, logger)
	}

	store := assistant.NewIndexStore(vectorstore.NewStore(vectorstore.Config{
		Dir:        cfg.IndexCfg.Dir,
		Collection: cfg.IndexCfg.Collection,
		Compress:   cfg.IndexCfg.Compress,
	}, embedder.Embed))

	newAssistant := func(sessionID string) session.Assistant {
		return assistant.New(sessionID, splitter, embedder, store, chatClient)
	}

	manager := session.NewManager(
		cfg.SessionCfg.TTL,
		cfg.SessionCfg.CleanupInterval,
		newAssistant,
		turns,
		logger,
	)

	logger.Info("Retrieval pipeline initialized",
		zap.String("chunker", cfg.ChunkerCfg.Type),
		zap.String("embedder", cfg.EmbeddingConnectorCfg.Provider),
		zap.String("index_dir", cfg.IndexCfg.Dir),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	return &components{sessions: manager, db: db}, nil
}

// setupEmbedder picks the embedding provider
func setupEmbedder(cfg *config.Config, logger *zap.Logger) assistant.Embedder {
	switch {
	case cfg.EnableMocks:
		logger.Info("Using mock embedding connector")
		return embedding.NewMockConnector(cfg.EmbeddingConnectorCfg.Dimension, logger)
	case cfg.EmbeddingConnectorCfg.Provider == "hashing":
		return embedding.NewHashingEmbedder(cfg.EmbeddingConnectorCfg.Dimension)
	default:
		return embedding.NewConnector(cfg.EmbeddingConnectorCfg, logger)
	}
}

// setupTurnRepository stores transcripts in Postgres when DATABASE_URL is set
func setupTurnRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.TurnRepository, *pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL is not set, keeping transcripts in memory")
		return repository.NewTurnMemory(), nil, nil
	}

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	return repository.NewTurnPostgres(db), db, nil
}

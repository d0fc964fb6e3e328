package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "llama2:chat", cfg.ChatConnectorCfg.Model)
	assert.Equal(t, "/api/chat", cfg.ChatConnectorCfg.ChatEndpoint)
	assert.Equal(t, 2*time.Minute, cfg.ChatConnectorCfg.RequestTimeout)
	assert.Equal(t, "http://localhost:11434", cfg.ChatConnectorCfg.Url)
	assert.Equal(t, "window", cfg.ChunkerCfg.Type)
	assert.Equal(t, 1024, cfg.ChunkerCfg.MaxLength)
	assert.Equal(t, 100, cfg.ChunkerCfg.Overlap)
	assert.Equal(t, "candidate_chroma_db", cfg.IndexCfg.Dir)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.Minute, cfg.TelegramCfg.DownloadTimeout)
	assert.Greater(t, cfg.ServerRequestTimeout, askBudget(cfg))
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("CHAT_MODEL", "llama3")
	t.Setenv("CHAT_TIMEOUT", "30s")
	t.Setenv("EMBED_PROVIDER", "hashing")
	t.Setenv("EMBED_DIMENSION", "64")
	t.Setenv("CHUNKER_TYPE", "recursive")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "llama3", cfg.ChatConnectorCfg.Model)
	assert.Equal(t, 30*time.Second, cfg.ChatConnectorCfg.RequestTimeout)
	assert.Equal(t, "hashing", cfg.EmbeddingConnectorCfg.Provider)
	assert.Equal(t, 64, cfg.EmbeddingConnectorCfg.Dimension)
	assert.Equal(t, "recursive", cfg.ChunkerCfg.Type)
	assert.Equal(t, time.Hour, cfg.SessionCfg.TTL)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"overlap not below max", map[string]string{"CHUNKER_MAX_LENGTH": "10", "CHUNKER_OVERLAP": "10"}, "CHUNKER_OVERLAP"},
		{"non-positive max", map[string]string{"CHUNKER_MAX_LENGTH": "0", "CHUNKER_OVERLAP": "0"}, "CHUNKER_MAX_LENGTH"},
		{"unknown chunker", map[string]string{"CHUNKER_TYPE": "sentence"}, "CHUNKER_TYPE"},
		{"unknown embedder", map[string]string{"EMBED_PROVIDER": "openai"}, "EMBED_PROVIDER"},
		{"tiny hashing dimension", map[string]string{"EMBED_PROVIDER": "hashing", "EMBED_DIMENSION": "2"}, "EMBED_DIMENSION"},
		{"zero chat timeout", map[string]string{"CHAT_TIMEOUT": "0s"}, "CHAT_TIMEOUT"},
		{"server timeout below retry budget", map[string]string{"SERVER_REQUEST_TIMEOUT": "5m"}, "SERVER_REQUEST_TIMEOUT"},
		{"zero download timeout", map[string]string{"TELEGRAM_DOWNLOAD_TIMEOUT": "0s"}, "TELEGRAM_DOWNLOAD_TIMEOUT"},
		{"bad pool size", map[string]string{"DATABASE_URL": "postgres://localhost/db", "DB_MAX_CONNS": "0"}, "DB_MAX_CONNS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Parse()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAskBudget(t *testing.T) {
	t.Setenv("CHAT_TIMEOUT", "1m")
	t.Setenv("CHAT_RETRY_ATTEMPTS", "3")
	t.Setenv("CHAT_RETRY_MAX_DELAY", "1s")
	t.Setenv("EMBED_PROVIDER", "hashing")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Minute+2*time.Second, askBudget(cfg))

	t.Setenv("EMBED_PROVIDER", "ollama")
	t.Setenv("EMBED_TIMEOUT", "10s")
	t.Setenv("EMBED_RETRY_ATTEMPTS", "2")
	t.Setenv("EMBED_RETRY_MAX_DELAY", "1s")

	cfg, err = Parse()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Minute+2*time.Second+21*time.Second, askBudget(cfg))
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("prod"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}

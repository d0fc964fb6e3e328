package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/resume-assistant/internal/config"
	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/integration/common"
	pkghttp "github.com/futig/resume-assistant/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var ErrEmptyEmbedding = errors.New("empty embedding")

// Connector talks to an Ollama-compatible embedding endpoint.
type Connector struct {
	config    config.EmbeddingConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbeddingConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Embed returns the embedding of text.
// POST {embed_endpoint} {"model","input"}; temporary failures are retried.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	req := &entity.EmbedRequest{
		Model: c.config.Model,
		Input: text,
	}

	var resp entity.EmbedResponse
	err := c.config.Retry.Do(ctx, func() error {
		resp = entity.EmbedResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.EmbedEndpoint, req, &resp)
	}, pkghttp.IsRetryable)
	if err != nil {
		ctxzap.Error(ctx, "failed to embed text", zap.Error(err))
		return nil, fmt.Errorf("embed text: %w", err)
	}

	var vec []float32
	switch {
	case len(resp.Embeddings) > 0:
		vec = resp.Embeddings[0]
	case len(resp.Embedding) > 0:
		vec = resp.Embedding
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("embed text: %w", ErrEmptyEmbedding)
	}

	return vec, nil
}

package chat

import (
	"context"
	"errors"
	"net/http"

	"github.com/futig/resume-assistant/internal/config"
	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/integration/common"
	pkghttp "github.com/futig/resume-assistant/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector calls an Ollama-compatible chat completion endpoint
type Connector struct {
	config    config.ChatConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ChatConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Complete sends messages without streaming and returns the reply text.
// POST {chat_endpoint} {"model","messages","stream":false}
func (c *Connector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	req := &entity.ChatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Stream:   false,
	}

	ctxzap.Info(ctx, "requesting chat completion", zap.String("model", c.config.Model))

	var resp *pkghttp.RawResponse
	err := c.config.Retry.Do(ctx, func() error {
		raw, err := c.connector.DoRawRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req)
		if err != nil {
			return err
		}
		resp = raw
		if raw.StatusCode == http.StatusTooManyRequests || raw.StatusCode == http.StatusServiceUnavailable {
			return &pkghttp.HTTPError{StatusCode: raw.StatusCode, Message: string(raw.Body)}
		}
		return nil
	}, pkghttp.IsRetryable)

	var httpErr *pkghttp.HTTPError
	if err != nil && !errors.As(err, &httpErr) {
		ctxzap.Error(ctx, "chat request failed", zap.Error(err))
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		upstream := parseError(resp.StatusCode, resp.Body)
		ctxzap.Warn(ctx, "chat service returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("error", upstream.Message),
		)
		return "", upstream
	}

	reply, err := ParseReply(resp.Body)
	if err != nil {
		ctxzap.Warn(ctx, "unusable chat reply", zap.Error(err))
		return "", err
	}

	ctxzap.Info(ctx, "chat completion received",
		zap.Stringer("shape", reply.Shape),
		zap.Int("answer_length", len(reply.Content)),
	)

	return reply.Content, nil
}

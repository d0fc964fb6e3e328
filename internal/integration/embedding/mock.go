package embedding

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector embeds locally instead of calling the embedding service
type MockConnector struct {
	embedder *HashingEmbedder
	logger   *zap.Logger
}

func NewMockConnector(dimension int, logger *zap.Logger) *MockConnector {
	return &MockConnector{
		embedder: NewHashingEmbedder(dimension),
		logger:   logger,
	}
}

func (m *MockConnector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] embedding text", zap.Int("text_length", len(text)))
	return m.embedder.Embed(ctx, text)
}

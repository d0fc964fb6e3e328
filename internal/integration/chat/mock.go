package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers with the candidates found in the prompt context
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] requesting chat completion", zap.Int("message_count", len(messages)))

	var user string
	for _, msg := range messages {
		if msg.Role == entity.ChatRoleUser {
			user = msg.Content
		}
	}

	var b strings.Builder
	seen := make(map[string]struct{})
	for _, field := range strings.Split(user, "CandidateID: ")[1:] {
		id, _, _ := strings.Cut(field, " |")
		if _, ok := seen[id]; ok || len(seen) == 3 {
			continue
		}
		seen[id] = struct{}{}
		fmt.Fprintf(&b, "CandidateID: %s\nSummary: matched by the mock assistant.\n\n", id)
	}

	if b.Len() == 0 {
		return "Hello! Ask me about the uploaded candidates.", nil
	}
	return strings.TrimSpace(b.String()), nil
}

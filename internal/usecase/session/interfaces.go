package session

import (
	"context"

	"github.com/futig/resume-assistant/internal/entity"
)

// Assistant is the retrieval pipeline owned by one session.
type Assistant interface {
	Ingest(ctx context.Context, files []entity.FileData) (*entity.IngestReport, error)
	Ask(ctx context.Context, query string) string
	Clear()
	Ready() bool
	// Discard releases everything the assistant persisted.
	Discard(ctx context.Context) error
}

// AssistantFactory builds the assistant of a new session.
type AssistantFactory func(sessionID string) Assistant

package assistant

import (
	"context"

	"github.com/futig/resume-assistant/internal/entity"
)

type Chunker interface {
	Split(doc entity.Document) ([]entity.Chunk, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type ChatClient interface {
	Complete(ctx context.Context, messages []entity.ChatMessage) (string, error)
}

// Index is a built, searchable vector index.
type Index interface {
	Search(ctx context.Context, query string, k int) ([]entity.SearchResult, error)
	Count() int
}

// IndexStore rebuilds and removes the index stored under name.
type IndexStore interface {
	Build(ctx context.Context, name string, entries []entity.IndexedEntry) (Index, error)
	Remove(ctx context.Context, name string) error
}

package assistant

import (
	"context"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/vectorstore"
)

type vectorStore struct {
	store *vectorstore.Store
}

// NewIndexStore exposes a vectorstore.Store as an IndexStore.
func NewIndexStore(store *vectorstore.Store) IndexStore {
	return &vectorStore{store: store}
}

func (s *vectorStore) Build(ctx context.Context, name string, entries []entity.IndexedEntry) (Index, error) {
	idx, err := s.store.Build(ctx, name, entries)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func (s *vectorStore) Remove(_ context.Context, name string) error {
	return s.store.Remove(name)
}

package assistant

import (
	"context"
	"fmt"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/ingest"
	"github.com/futig/resume-assistant/internal/integration/chat"
	"github.com/futig/resume-assistant/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// TopK is the number of chunks retrieved per question.
const TopK = 5

const (
	MsgNotIngested = "Please ingest a CSV file first."
	MsgNoContext   = "No relevant context found in the database."
)

// Assistant answers questions over one ingested candidate batch.
// It is not safe for concurrent use.
type Assistant struct {
	name     string
	chunker  Chunker
	embedder Embedder
	store    IndexStore
	chat     ChatClient

	index Index
}

// New creates an assistant whose index is stored under name.
func New(name string, chunker Chunker, embedder Embedder, store IndexStore, chat ChatClient) *Assistant {
	return &Assistant{
		name:     name,
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		chat:     chat,
	}
}

// Ready reports whether an index is loaded.
func (a *Assistant) Ready() bool {
	return a.index != nil
}

// Clear drops the loaded index. Persisted files stay on disk.
func (a *Assistant) Clear() {
	a.index = nil
}

// Discard drops the loaded index and deletes its persisted files.
func (a *Assistant) Discard(ctx context.Context) error {
	a.index = nil
	if err := a.store.Remove(ctx, a.name); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}
	return nil
}

// Ingest rebuilds the index from files. Nothing is replaced unless every
// file parses and every chunk embeds.
func (a *Assistant) Ingest(ctx context.Context, files []entity.FileData) (*entity.IngestReport, error) {
	ctx = logger.WithAction(ctx, "assistant.ingest")

	batch, err := ingest.LoadFiles(files)
	if err != nil {
		return nil, err
	}

	var chunks []entity.Chunk
	for _, doc := range batch.Documents {
		parts, err := a.chunker.Split(doc)
		if err != nil {
			return nil, fmt.Errorf("split candidate %s: %w", doc.ID, err)
		}
		chunks = append(chunks, parts...)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no resume text to index", entity.ErrBadInput)
	}

	entries := make([]entity.IndexedEntry, 0, len(chunks))
	for _, ch := range chunks {
		vec, err := a.embedder.Embed(ctx, ch.Text)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %s: %w", ch.ID, err)
		}
		entries = append(entries, entity.IndexedEntry{Chunk: ch, Embedding: vec})
	}

	idx, err := a.store.Build(ctx, a.name, entries)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	a.index = idx

	ctxzap.Info(ctx, "candidates ingested",
		zap.Strings("files", batch.Files),
		zap.Int("rows", len(batch.Documents)),
		zap.Int("chunks", len(entries)),
	)

	return &entity.IngestReport{
		Files:          batch.Files,
		Rows:           len(batch.Documents),
		Chunks:         len(entries),
		DroppedColumns: batch.DroppedColumns,
	}, nil
}

// Ask answers query from the top TopK chunks. Failures are returned as
// answer text, never as errors.
func (a *Assistant) Ask(ctx context.Context, query string) string {
	ctx = logger.WithAction(ctx, "assistant.ask")

	if a.index == nil {
		return MsgNotIngested
	}

	results, err := a.index.Search(ctx, query, TopK)
	if err != nil {
		ctxzap.Error(ctx, "similarity search failed", zap.Error(err))
		return chat.ErrorAnswer(err)
	}
	if len(results) == 0 {
		return MsgNoContext
	}

	contextText := BuildContext(results)
	ctxzap.Debug(ctx, "context used",
		zap.Int("results", len(results)),
		zap.String("context", contextText),
	)

	answer, err := a.chat.Complete(ctx, BuildMessages(query, contextText))
	if err != nil {
		return chat.ErrorAnswer(err)
	}
	return answer
}

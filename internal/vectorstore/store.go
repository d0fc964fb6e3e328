package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"
)

// Bookkeeping keys stored next to the chunk metadata and stripped on read.
const (
	metaDocumentID = "_document_id"
	metaChunkIndex = "_chunk_index"
	metaStart      = "_start"
	metaEnd        = "_end"
)

var (
	ErrEmptyBatch     = errors.New("no entries to index")
	ErrDuplicateEntry = errors.New("duplicate entry id")
)

// EmbedFunc embeds query texts. Its vectors must match the indexed ones.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

type Config struct {
	// Dir is the root directory for persisted indexes; empty keeps them in memory.
	Dir        string
	Collection string
	Compress   bool
}

// Store opens per-session indexes.
type Store struct {
	cfg   Config
	embed EmbedFunc
}

func NewStore(cfg Config, embed EmbedFunc) *Store {
	return &Store{cfg: cfg, embed: embed}
}

// Build replaces the content of the index stored under name with entries.
// The returned Index is only handed out after every entry was written.
func (s *Store) Build(ctx context.Context, name string, entries []entity.IndexedEntry) (*Index, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	db, path, err := s.open(name)
	if err != nil {
		return nil, err
	}

	if err := db.DeleteCollection(s.cfg.Collection); err != nil {
		return nil, fmt.Errorf("drop collection %s: %w", s.cfg.Collection, err)
	}

	coll, err := db.CreateCollection(s.cfg.Collection, nil, chromem.EmbeddingFunc(s.embed))
	if err != nil {
		return nil, fmt.Errorf("create collection %s: %w", s.cfg.Collection, err)
	}

	docs := make([]chromem.Document, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Chunk.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEntry, e.Chunk.ID)
		}
		seen[e.Chunk.ID] = struct{}{}
		docs = append(docs, toDocument(e))
	}

	if err := coll.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("add documents: %w", err)
	}

	ctxzap.Info(ctx, "vector index built",
		zap.String("path", path),
		zap.Int("entries", coll.Count()),
	)

	return &Index{db: db, coll: coll}, nil
}

// Remove deletes the persisted index stored under name, if any.
func (s *Store) Remove(name string) error {
	if s.cfg.Dir == "" {
		return nil
	}

	path := filepath.Join(s.cfg.Dir, name)
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove index at %s: %w", path, err)
	}
	return nil
}

func (s *Store) open(name string) (*chromem.DB, string, error) {
	if s.cfg.Dir == "" {
		return chromem.NewDB(), "", nil
	}

	path := filepath.Join(s.cfg.Dir, name)
	db, err := chromem.NewPersistentDB(path, s.cfg.Compress)
	if err != nil {
		return nil, "", fmt.Errorf("open index at %s: %w", path, err)
	}
	return db, path, nil
}

func toDocument(e entity.IndexedEntry) chromem.Document {
	meta := make(map[string]string, len(e.Chunk.Metadata)+4)
	maps.Copy(meta, e.Chunk.Metadata)
	meta[metaDocumentID] = e.Chunk.DocumentID
	meta[metaChunkIndex] = strconv.Itoa(e.Chunk.Index)
	meta[metaStart] = strconv.Itoa(e.Chunk.Start)
	meta[metaEnd] = strconv.Itoa(e.Chunk.End)

	return chromem.Document{
		ID:        e.Chunk.ID,
		Metadata:  meta,
		Embedding: e.Embedding,
		Content:   e.Chunk.Text,
	}
}

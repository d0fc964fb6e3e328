package chunker

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/futig/resume-assistant/internal/entity"
)

// Chunker splits a document into chunks suitable for embedding.
type Chunker interface {
	Split(doc entity.Document) ([]entity.Chunk, error)
}

const (
	TypeWindow    = "window"
	TypeRecursive = "recursive"
)

// New returns the chunker registered under kind.
func New(kind string, maxLength, overlap int) (Chunker, error) {
	switch kind {
	case TypeWindow, "":
		return NewWindowChunker(maxLength, overlap)
	case TypeRecursive:
		return NewRecursiveChunker(maxLength, overlap)
	default:
		return nil, fmt.Errorf("%w: unknown chunker type %q", entity.ErrInvalidChunker, kind)
	}
}

func validate(maxLength, overlap int) error {
	if maxLength <= 0 {
		return fmt.Errorf("%w: max chunk length must be positive, got %d", entity.ErrInvalidChunker, maxLength)
	}
	if overlap < 0 || overlap >= maxLength {
		return fmt.Errorf("%w: overlap must be in [0, %d), got %d", entity.ErrInvalidChunker, maxLength, overlap)
	}
	return nil
}

func newChunk(doc entity.Document, idx int, text string, start, end int) entity.Chunk {
	meta := maps.Clone(doc.Metadata)
	if meta == nil {
		meta = make(map[string]string, 1)
	}
	if _, ok := meta[entity.ColumnCandidateID]; !ok {
		meta[entity.ColumnCandidateID] = doc.ID
	}

	return entity.Chunk{
		ID:         chunkID(doc, idx),
		DocumentID: doc.ID,
		Index:      idx,
		Text:       text,
		Start:      start,
		End:        end,
		Metadata:   meta,
	}
}

// chunkID is unique within one ingestion batch: file position, source name
// and row disambiguate candidates that appear more than once.
func chunkID(doc entity.Document, idx int) string {
	parts := make([]string, 0, 5)
	if file := doc.Metadata[entity.MetaFile]; file != "" {
		parts = append(parts, file)
	}
	if src := doc.Metadata[entity.MetaSource]; src != "" {
		parts = append(parts, src)
	}
	if row := doc.Metadata[entity.MetaRow]; row != "" {
		parts = append(parts, row)
	}
	parts = append(parts, doc.ID, strconv.Itoa(idx))
	return strings.Join(parts, ":")
}

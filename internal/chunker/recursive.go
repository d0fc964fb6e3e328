package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/tmc/langchaingo/textsplitter"
)

// RecursiveChunker splits on paragraph, line and word boundaries before
// falling back to single characters.
type RecursiveChunker struct {
	splitter textsplitter.RecursiveCharacter
}

func NewRecursiveChunker(maxLength, overlap int) (*RecursiveChunker, error) {
	if err := validate(maxLength, overlap); err != nil {
		return nil, err
	}

	return &RecursiveChunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(maxLength),
			textsplitter.WithChunkOverlap(overlap),
		),
	}, nil
}

func (c *RecursiveChunker) Split(doc entity.Document) ([]entity.Chunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	parts, err := c.splitter.SplitText(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("split document %s: %w", doc.ID, err)
	}

	chunks := make([]entity.Chunk, 0, len(parts))
	// byte cursor into doc.Content; parts come back in document order
	cursor := 0
	for idx, part := range parts {
		start := cursor
		if pos := strings.Index(doc.Content[cursor:], part); pos >= 0 {
			start = cursor + pos
			cursor = start + 1
			for cursor < len(doc.Content) && !utf8.RuneStart(doc.Content[cursor]) {
				cursor++
			}
		}

		runeStart := utf8.RuneCountInString(doc.Content[:start])
		chunks = append(chunks, newChunk(doc, idx, part, runeStart, runeStart+utf8.RuneCountInString(part)))
	}

	return chunks, nil
}

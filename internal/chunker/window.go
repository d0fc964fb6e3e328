package chunker

import "github.com/futig/resume-assistant/internal/entity"

// WindowChunker cuts text into fixed windows of maxLength runes.
// Each window starts maxLength-overlap runes after the previous one,
// so neighbours share exactly overlap runes and the last window ends at the text end.
type WindowChunker struct {
	maxLength int
	overlap   int
}

func NewWindowChunker(maxLength, overlap int) (*WindowChunker, error) {
	if err := validate(maxLength, overlap); err != nil {
		return nil, err
	}
	return &WindowChunker{maxLength: maxLength, overlap: overlap}, nil
}

func (c *WindowChunker) Split(doc entity.Document) ([]entity.Chunk, error) {
	runes := []rune(doc.Content)
	if len(runes) == 0 {
		return nil, nil
	}

	step := c.maxLength - c.overlap
	chunks := make([]entity.Chunk, 0, len(runes)/step+1)

	for start, idx := 0, 0; ; start, idx = start+step, idx+1 {
		end := min(start+c.maxLength, len(runes))
		chunks = append(chunks, newChunk(doc, idx, string(runes[start:end]), start, end))
		if end == len(runes) {
			break
		}
	}

	return chunks, nil
}

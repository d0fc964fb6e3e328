package entity

// Column names every candidate table must carry.
const (
	ColumnCandidateID = "CandidateID"
	ColumnResume      = "Resume"
)

// Metadata keys attached to every document besides its columns.
const (
	MetaSource = "source"
	MetaRow    = "row"
	// MetaFile is the position of the source file within its upload batch.
	MetaFile = "file"
)

// Document is one row of a candidate table.
// ID is the row's CandidateID; Content is the Resume text.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Chunk is a contiguous slice of a document's content.
// Start and End are rune offsets into Document.Content, End exclusive.
type Chunk struct {
	ID         string
	DocumentID string
	Index      int
	Text       string
	Start      int
	End        int
	Metadata   map[string]string
}

// CandidateID returns the identifier of the row the chunk was cut from.
func (c Chunk) CandidateID() string {
	if id, ok := c.Metadata[ColumnCandidateID]; ok {
		return id
	}
	return c.DocumentID
}

// IndexedEntry is a chunk together with its embedding.
type IndexedEntry struct {
	Chunk     Chunk
	Embedding []float32
}

// SearchResult is a chunk returned by a similarity search.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// FileData is an uploaded file held in memory.
type FileData struct {
	Filename string
	Content  []byte
}

// IngestReport summarizes a completed ingestion batch.
type IngestReport struct {
	Files          []string `json:"files"`
	Rows           int      `json:"rows"`
	Chunks         int      `json:"chunks"`
	DroppedColumns []string `json:"dropped_columns,omitempty"`
}

package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/futig/resume-assistant/internal/entity"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Batch is the parsed content of one upload.
type Batch struct {
	Files          []string
	Documents      []entity.Document
	DroppedColumns []string
}

// LoadFiles parses every file as a candidate table.
// Any malformed file fails the whole batch with entity.ErrBadInput.
func LoadFiles(files []entity.FileData) (*Batch, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files", entity.ErrBadInput)
	}

	batch := &Batch{}
	dropped := make(map[string]struct{})

	for i, f := range files {
		docs, droppedCols, err := ParseCSV(f.Filename, f.Content)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			doc.Metadata[entity.MetaFile] = strconv.Itoa(i)
		}

		batch.Files = append(batch.Files, f.Filename)
		batch.Documents = append(batch.Documents, docs...)
		for _, col := range droppedCols {
			dropped[col] = struct{}{}
		}
	}

	if len(batch.Documents) == 0 {
		return nil, fmt.Errorf("%w: no candidate rows", entity.ErrBadInput)
	}

	for col := range dropped {
		batch.DroppedColumns = append(batch.DroppedColumns, col)
	}
	slices.Sort(batch.DroppedColumns)

	return batch, nil
}

// ParseCSV maps every row of a CSV table to a document.
// It returns the documents and the names of columns whose composite
// (JSON array or object) values were left out of the metadata.
func ParseCSV(name string, content []byte) ([]entity.Document, []string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = 0

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: %s is empty", entity.ErrBadInput, name)
	}
	if err != nil {
		return nil, nil, badCSV(name, err)
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	idCol, err := columnIndex(name, header, entity.ColumnCandidateID)
	if err != nil {
		return nil, nil, err
	}
	resumeCol, err := columnIndex(name, header, entity.ColumnResume)
	if err != nil {
		return nil, nil, err
	}

	var (
		docs    []entity.Document
		dropped = make(map[string]struct{})
	)

	for row := 0; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, badCSV(name, err)
		}

		id := strings.TrimSpace(record[idCol])
		if id == "" {
			return nil, nil, fmt.Errorf("%w: %s row %d: empty %s", entity.ErrBadInput, name, row, entity.ColumnCandidateID)
		}
		if isComposite(id) {
			return nil, nil, fmt.Errorf("%w: %s row %d: %s must be a scalar", entity.ErrBadInput, name, row, entity.ColumnCandidateID)
		}

		meta := map[string]string{
			entity.ColumnCandidateID: id,
			entity.MetaSource:        name,
			entity.MetaRow:           strconv.Itoa(row),
		}

		for i, col := range header {
			if i == idCol || i == resumeCol || col == "" {
				continue
			}
			if _, reserved := meta[col]; reserved || col == entity.MetaFile {
				continue
			}
			if isComposite(record[i]) {
				dropped[col] = struct{}{}
				continue
			}
			meta[col] = record[i]
		}

		docs = append(docs, entity.Document{
			ID:       id,
			Content:  record[resumeCol],
			Metadata: meta,
		})
	}

	droppedCols := make([]string, 0, len(dropped))
	for col := range dropped {
		droppedCols = append(droppedCols, col)
	}
	slices.Sort(droppedCols)

	return docs, droppedCols, nil
}

func columnIndex(name string, header []string, column string) (int, error) {
	idx := -1
	for i, col := range header {
		if col != column {
			continue
		}
		if idx >= 0 {
			return 0, fmt.Errorf("%w: %s: duplicate column %q", entity.ErrBadInput, name, column)
		}
		idx = i
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s: missing column %q", entity.ErrBadInput, name, column)
	}
	return idx, nil
}

// isComposite reports whether v holds a JSON array or object.
func isComposite(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || (v[0] != '[' && v[0] != '{') {
		return false
	}
	return json.Valid([]byte(v))
}

func badCSV(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", entity.ErrBadInput, name, err)
}

package vectorstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/philippgille/chromem-go"
)

// Index is one built collection.
type Index struct {
	db   *chromem.DB
	coll *chromem.Collection
}

func (i *Index) Count() int {
	return i.coll.Count()
}

// Search returns up to k chunks ordered by descending similarity, then
// ascending CandidateID, then ascending chunk index.
func (i *Index) Search(ctx context.Context, query string, k int) ([]entity.SearchResult, error) {
	n := min(k, i.coll.Count())
	if n <= 0 {
		return nil, nil
	}

	res, err := i.coll.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	out := make([]entity.SearchResult, 0, len(res))
	for _, r := range res {
		out = append(out, entity.SearchResult{
			Chunk: fromResult(r),
			Score: r.Similarity,
		})
	}

	slices.SortStableFunc(out, compareResults)

	return out, nil
}

func compareResults(a, b entity.SearchResult) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := compareIDs(a.Chunk.CandidateID(), b.Chunk.CandidateID()); c != 0 {
		return c
	}
	return cmp.Compare(a.Chunk.Index, b.Chunk.Index)
}

// compareIDs orders numeric identifiers numerically and everything else lexically.
func compareIDs(a, b string) int {
	an, aErr := strconv.ParseInt(a, 10, 64)
	bn, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(an, bn)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

func fromResult(r chromem.Result) entity.Chunk {
	meta := make(map[string]string, len(r.Metadata))
	for k, v := range r.Metadata {
		switch k {
		case metaDocumentID, metaChunkIndex, metaStart, metaEnd:
		default:
			meta[k] = v
		}
	}

	idx, _ := strconv.Atoi(r.Metadata[metaChunkIndex])
	start, _ := strconv.Atoi(r.Metadata[metaStart])
	end, _ := strconv.Atoi(r.Metadata[metaEnd])

	return entity.Chunk{
		ID:         r.ID,
		DocumentID: r.Metadata[metaDocumentID],
		Index:      idx,
		Text:       r.Content,
		Start:      start,
		End:        end,
		Metadata:   meta,
	}
}

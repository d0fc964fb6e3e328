package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// HashingEmbedder maps text to a fixed-size bag-of-words vector using the
// hashing trick. It needs no corpus preparation and no remote service.
type HashingEmbedder struct {
	dimension int
	stopwords map[string]struct{}
}

func NewHashingEmbedder(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = 256
	}
	return &HashingEmbedder{
		dimension: dimension,
		stopwords: defaultStopwords(),
	}
}

func (e *HashingEmbedder) Dimension() int { return e.dimension }

// Embed never fails; texts without tokens map to a constant unit vector.
func (e *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimension)

	tokens := 0
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := e.stopwords[tok]; stop {
			continue
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum64()%uint64(e.dimension)]++
		tokens++
	}

	if tokens == 0 {
		vec[0] = 1
		return vec, nil
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}

	return vec, nil
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "can", "do", "does", "for", "from",
		"has", "have", "he", "her", "his", "i", "in", "is", "it", "its", "me", "my", "of",
		"on", "or", "she", "that", "the", "their", "them", "they", "this", "to", "was",
		"we", "were", "what", "which", "who", "whom", "with", "you", "your",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

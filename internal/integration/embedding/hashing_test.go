package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func TestHashingEmbedder_Normalized(t *testing.T) {
	e := NewHashingEmbedder(64)
	vec, err := e.Embed(context.Background(), "5 years Python, SQL, dashboards")
	require.NoError(t, err)
	require.Len(t, vec, 64)

	assert.InDelta(t, 1.0, math.Sqrt(cosine(vec, vec)), 1e-5)
}

func TestHashingEmbedder_Deterministic(t *testing.T) {
	e := NewHashingEmbedder(32)
	a, err := e.Embed(context.Background(), "Java backend")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "JAVA   backend!")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHashingEmbedder_SharedTermsAreCloser(t *testing.T) {
	e := NewHashingEmbedder(1024)
	ctx := context.Background()

	query, _ := e.Embed(ctx, "Who has Python experience?")
	python, _ := e.Embed(ctx, "5 years Python, SQL, dashboards")
	java, _ := e.Embed(ctx, "2 years Java backend development")

	assert.Greater(t, cosine(query, python), cosine(query, java))
}

func TestHashingEmbedder_EmptyText(t *testing.T) {
	e := NewHashingEmbedder(0)
	assert.Equal(t, 256, e.Dimension())

	vec, err := e.Embed(context.Background(), "  the a  ")
	require.NoError(t, err)
	assert.Equal(t, float32(1), vec[0])
}

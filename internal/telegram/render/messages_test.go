package render

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, SplitMessage("short"))

	line := strings.Repeat("я", 99) + "\n"
	long := strings.Repeat(line, 100)
	parts := SplitMessage(long)

	assert.Greater(t, len(parts), 1)
	assert.Equal(t, long, strings.Join(parts, ""))
	for _, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), MaxMessageLength)
		assert.True(t, strings.HasSuffix(p, "\n"))
	}

	unbroken := strings.Repeat("x", MaxMessageLength+10)
	parts = SplitMessage(unbroken)
	assert.Equal(t, []int{MaxMessageLength, 10}, []int{len(parts[0]), len(parts[1])})
}

func TestRenderIngestReport(t *testing.T) {
	text := RenderIngestReport(&entity.IngestReport{
		Files:          []string{"a.csv"},
		Rows:           2,
		Chunks:         3,
		DroppedColumns: []string{"Skills"},
	})
	assert.Contains(t, text, "Indexed 2 candidates (3 chunks) from a.csv.")
	assert.Contains(t, text, "Skills")
}

func TestRenderBadCSV(t *testing.T) {
	err := fmt.Errorf("ingest: %w: a.csv: missing column Resume", entity.ErrBadInput)
	assert.Equal(t, "❌ The table could not be read: a.csv: missing column Resume", RenderBadCSV(err))
}

package formatter

import (
	"bytes"
	"testing"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transcript = []entity.Turn{
	{Text: "Who has Python experience?", IsUser: true},
	{Text: "CandidateID: 101\nSummary: 5 years of Python and SQL."},
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	for format, ext := range map[entity.ResultFormat]string{
		entity.FormatMarkdown: ".md",
		entity.FormatPDF:      ".pdf",
		entity.FormatDOCX:     ".docx",
	} {
		got, err := f.Create(format)
		require.NoError(t, err)
		assert.Equal(t, ext, got.FileExtension())
	}

	_, err := f.Create("html")
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(transcript)
	require.NoError(t, err)

	want := "# Resume assistant transcript\n" +
		"\n**You:**\n\n> Who has Python experience?\n" +
		"\n**Assistant:**\n\n> CandidateID: 101\n> Summary: 5 years of Python and SQL.\n"
	assert.Equal(t, want, string(out))
}

func TestPDFFormatter(t *testing.T) {
	f := NewPDFFormatter()
	out, err := f.Format(transcript)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", f.ContentType())
}

package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/futig/resume-assistant/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(turns []entity.Turn) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", baseTitle)
	for _, t := range turns {
		// keep multi-line answers inside one block quote
		fmt.Fprintf(&buf, "\n**%s:**\n\n> %s\n", speaker(t), strings.ReplaceAll(t.Text, "\n", "\n> "))
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}

package formatter

import (
	"fmt"

	"github.com/futig/resume-assistant/internal/entity"
)

const baseTitle = "Resume assistant transcript"

type Formatter interface {
	Format(turns []entity.Turn) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

func speaker(t entity.Turn) string {
	if t.IsUser {
		return "You"
	}
	return "Assistant"
}

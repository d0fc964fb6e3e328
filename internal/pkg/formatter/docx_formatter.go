package formatter

import (
	"bytes"
	"strings"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(turns []entity.Turn) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titleRun := titlePar.AddRun()
	titleRun.AddText(baseTitle)

	for _, t := range turns {
		doc.AddParagraph()

		speakerRun := doc.AddParagraph().AddRun()
		speakerRun.Properties().SetBold(true)
		speakerRun.AddText(speaker(t))

		bodyRun := doc.AddParagraph().AddRun()
		for i, line := range strings.Split(t.Text, "\n") {
			if i > 0 {
				bodyRun.AddBreak()
			}
			bodyRun.AddText(line)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}

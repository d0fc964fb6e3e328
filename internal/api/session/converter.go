package session

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/futig/resume-assistant/internal/entity"
	"github.com/futig/resume-assistant/internal/pkg/validator"
)

// toFileData reads uploaded files into memory
func toFileData(files []*multipart.FileHeader) ([]entity.FileData, error) {
	fileDataList := make([]entity.FileData, 0, len(files))

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open file %s: %w", fh.Filename, err)
		}

		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("read file %s: %w", fh.Filename, err)
		}

		fileDataList = append(fileDataList, entity.FileData{
			Filename: validator.SanitizeFilename(fh.Filename),
			Content:  content,
		})
	}

	return fileDataList, nil
}

// toListTurnsResponse never returns a nil slice so the JSON is always an array
func toListTurnsResponse(turns []entity.Turn) *entity.ListTurnsResponse {
	if turns == nil {
		turns = []entity.Turn{}
	}
	return &entity.ListTurnsResponse{Turns: turns}
}

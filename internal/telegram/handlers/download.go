package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/resume-assistant/internal/entity"
	pkghttp "github.com/futig/resume-assistant/pkg/http"
)

// FileLinker resolves a Telegram file ID to a download URL
type FileLinker interface {
	GetFileDirectURL(fileID string) (string, error)
}

// TelegramDownloader downloads documents through the Bot API file endpoint
type TelegramDownloader struct {
	linker    FileLinker
	connector *pkghttp.Connector
	maxSize   int64
}

func NewTelegramDownloader(linker FileLinker, connector *pkghttp.Connector, maxSize int64) *TelegramDownloader {
	return &TelegramDownloader{
		linker:    linker,
		connector: connector,
		maxSize:   maxSize,
	}
}

// Download implements FileDownloader
func (d *TelegramDownloader) Download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := d.linker.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file link: %w", err)
	}

	resp, err := d.connector.DoRawRequest(ctx, http.MethodGet, "", nil, pkghttp.WithURL(url))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &pkghttp.HTTPError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if d.maxSize > 0 && int64(len(resp.Body)) > d.maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", entity.ErrFileTooLarge, len(resp.Body), d.maxSize)
	}

	return resp.Body, nil
}

package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key       string
	PublicURL string
}

// FileUploader отправляет медиа (логотипы команд) во внешнее хранилище.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}

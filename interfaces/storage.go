package interfaces

import (
	"context"

	"github.com/customeros/statusstack/internal/models"
)

type StorageService interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// AttachmentArchive copies attachment content out of the column store
// before the row is purged
type AttachmentArchive interface {
	Archive(ctx context.Context, attachment *models.Attachment) (string, error)
}

package interfaces

import (
	"context"

	"github.com/customeros/statusstack/internal/models"
)

// AttachmentRepository persists status attachments.
// Read paths report absence as nil and never return store errors.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	Delete(ctx context.Context, attachment *models.Attachment) error
	DeleteRemoved(ctx context.Context, attachment *models.Attachment) (bool, error)
	FindByFilename(ctx context.Context, filename string) *models.Attachment
	FindByStatusID(ctx context.Context, statusID string) *models.Attachment
	Remove(ctx context.Context, attachment *models.Attachment) error
	ListRemoved(ctx context.Context) ([]*models.Attachment, error)
}

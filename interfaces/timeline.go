package interfaces

import (
	"context"

	"github.com/customeros/statusstack/internal/models"
)

type StatusUpdateService interface {
	PostStatus(ctx context.Context, content string, attachment *models.Attachment) (*models.Status, error)
	ReplyToStatus(ctx context.Context, content, replyToStatusID string) (*models.Status, error)
	SaveAttachment(ctx context.Context, attachment *models.Attachment) error
}

type TimelineService interface {
	GetStatus(ctx context.Context, statusID string) (*models.Status, error)
	GetAttachment(ctx context.Context, statusID string) *models.Attachment
	GetStatusDetails(ctx context.Context, statusID string) (*models.StatusDetails, error)
	ShareStatus(ctx context.Context, statusID string) error
	RemoveStatus(ctx context.Context, statusID string) error
	RemoveAttachment(ctx context.Context, statusID string) error
	GetTimeline(ctx context.Context, query TimelineQuery) ([]*models.Status, error)
	GetUserline(ctx context.Context, username string, query TimelineQuery) ([]*models.Status, error)
}

type AttachmentPurgeService interface {
	PurgeRemovedAttachments(ctx context.Context) (int, error)
}

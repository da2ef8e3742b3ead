package interfaces

import (
	"context"

	"github.com/customeros/statusstack/internal/models"
)

type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	FindByID(ctx context.Context, statusID string) (*models.Status, error)
	Remove(ctx context.Context, status *models.Status) error
}

// TimelineQuery pages a line of statuses, newest first. SinceID and MaxID
// are exclusive bounds, empty means unbounded.
type TimelineQuery struct {
	Count   int
	SinceID string
	MaxID   string
}

type TimelineRepository interface {
	AddStatusToTimeline(ctx context.Context, username, statusID string) error
	AddStatusToUserline(ctx context.Context, username, statusID string) error
	RemoveStatusFromTimeline(ctx context.Context, username, statusID string) error
	RemoveStatusFromUserline(ctx context.Context, username, statusID string) error
	GetTimeline(ctx context.Context, username string, query TimelineQuery) ([]string, error)
	GetUserline(ctx context.Context, username string, query TimelineQuery) ([]string, error)
}

type DiscussionRepository interface {
	AddReply(ctx context.Context, originalStatusID, replyStatusID string) error
	GetReplies(ctx context.Context, originalStatusID string) ([]string, error)
	HasReplies(ctx context.Context, originalStatusID string) (bool, error)
}

type SharesRepository interface {
	AddShare(ctx context.Context, statusID, login string) error
	GetSharedBy(ctx context.Context, statusID string) ([]string, error)
}

package interfaces

import (
	"context"

	"github.com/customeros/statusstack/internal/enum"
)

type EventPublisher interface {
	PublishFanoutEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error
	Close() error
}

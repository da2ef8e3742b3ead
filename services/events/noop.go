package events

import (
	"context"

	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/logger"
)

// NoopPublisher drops events, used when no broker is configured
type NoopPublisher struct {
	logger logger.Logger
}

func NewNoopPublisher(logger logger.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishFanoutEvent(_ context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	if p.logger != nil && p.logger.IsDebugEnabled() {
		p.logger.Debugf("Dropping %s event for %s: %T", entityType, entityId, message)
	}
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}

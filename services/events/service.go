package events

import (
	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/logger"
)

type EventsService struct {
	Publisher interfaces.EventPublisher
}

// NewEventsService connects to RabbitMQ, or falls back to dropping events
// when rabbitmqURL is empty
func NewEventsService(rabbitmqURL string, log logger.Logger, publisherConfig *PublisherConfig) (*EventsService, error) {
	if rabbitmqURL == "" {
		log.Warn("RABBITMQ_URL not set, domain events are disabled")
		return &EventsService{Publisher: NewNoopPublisher(log)}, nil
	}

	publisher, err := NewRabbitMQPublisher(rabbitmqURL, log, publisherConfig)
	if err != nil {
		return nil, err
	}

	return &EventsService{
		Publisher: publisher,
	}, nil
}

func (s *EventsService) Close() error {
	if s.Publisher != nil {
		return s.Publisher.Close()
	}
	return nil
}

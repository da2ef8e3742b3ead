package services

import (
	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/repository"
	"github.com/customeros/statusstack/internal/validation"
	"github.com/customeros/statusstack/services/events"
	"github.com/customeros/statusstack/services/purge"
	"github.com/customeros/statusstack/services/status"
	"github.com/customeros/statusstack/services/storage"
	"github.com/customeros/statusstack/services/timeline"
)

type Services struct {
	EventsService       *events.EventsService
	StatusUpdateService interfaces.StatusUpdateService
	TimelineService     interfaces.TimelineService
	PurgeService        interfaces.AttachmentPurgeService
	// nil when no archive bucket is configured
	AttachmentArchive interfaces.AttachmentArchive
}

func InitServices(rabbitmqURL string, r2Config *storage.R2StorageConfig, log logger.Logger, repos *repository.Repositories, validator *validation.Validator) (*Services, error) {
	eventsService, err := events.NewEventsService(rabbitmqURL, log, events.DefaultPublisherConfig())
	if err != nil {
		return nil, err
	}

	services := Services{
		EventsService:       eventsService,
		StatusUpdateService: status.NewStatusUpdateService(repos, eventsService.Publisher, validator, log),
		TimelineService:     timeline.NewTimelineService(repos, eventsService.Publisher, log),
	}

	if r2Config.Enabled() {
		archiveStorage, err := storage.NewR2StorageService(r2Config)
		if err != nil {
			eventsService.Close()
			return nil, err
		}
		services.AttachmentArchive = storage.NewAttachmentArchive(archiveStorage, "")
	}
	services.PurgeService = purge.NewAttachmentPurgeService(repos.AttachmentRepository, services.AttachmentArchive, log)

	return &services, nil
}

package handlers

import (
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/validation"
	"github.com/customeros/statusstack/services"
)

type APIHandlers struct {
	Statuses *StatusesHandler
}

func InitHandlers(s *services.Services, validator *validation.Validator, log logger.Logger) *APIHandlers {
	return &APIHandlers{
		Statuses: NewStatusesHandler(s.StatusUpdateService, s.TimelineService, validator, log),
	}
}

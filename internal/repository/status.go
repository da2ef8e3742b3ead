package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/columnstore"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/models"
	"github.com/customeros/statusstack/internal/tracing"
	"github.com/customeros/statusstack/internal/validation"
)

type statusRepository struct {
	store     interfaces.ColumnStore
	validator *validation.Validator
	log       logger.Logger
}

func NewStatusRepository(store interfaces.ColumnStore, validator *validation.Validator, log logger.Logger) interfaces.StatusRepository {
	return &statusRepository{
		store:     store,
		validator: validator,
		log:       log,
	}
}

func (r *statusRepository) Create(ctx context.Context, status *models.Status) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "statusRepository.Create")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)

	if status == nil {
		return ErrNilStatus
	}
	tracing.TagEntity(span, status.StatusID)
	if status.StatusID == "" {
		return ErrMissingID
	}
	if r.log.IsDebugEnabled() {
		r.log.Debugf("Persisting status %s for %s", status.StatusID, status.Username)
	}

	if err := r.validator.Struct(status); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	if err := r.store.PutRow(ctx, enum.ColumnFamilyStatus, status.StatusID, status.ToColumns()); err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

// FindByID returns nil, nil when the status does not exist or was removed
func (r *statusRepository) FindByID(ctx context.Context, statusID string) (*models.Status, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "statusRepository.FindByID")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	if statusID == "" {
		return nil, nil
	}

	columns, err := r.store.GetRow(ctx, enum.ColumnFamilyStatus, statusID)
	if err != nil {
		if errors.Is(err, columnstore.ErrRowNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}

	status := models.StatusFromColumns(statusID, columns)
	if status.Removed {
		return nil, nil
	}
	return status, nil
}

// Remove tombstones the status
func (r *statusRepository) Remove(ctx context.Context, status *models.Status) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "statusRepository.Remove")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)

	if status == nil {
		return ErrNilStatus
	}
	tracing.TagEntity(span, status.StatusID)

	status.Removed = true
	err := r.store.PutColumns(ctx, enum.ColumnFamilyStatus, status.StatusID, map[string]string{models.StatusColumnRemoved: "true"})
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

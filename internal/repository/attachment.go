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

type attachmentRepository struct {
	store     interfaces.ColumnStore
	validator *validation.Validator
	log       logger.Logger
}

func NewAttachmentRepository(store interfaces.ColumnStore, validator *validation.Validator, log logger.Logger) interfaces.AttachmentRepository {
	return &attachmentRepository{
		store:     store,
		validator: validator,
		log:       log,
	}
}

// Create validates the attachment and writes it, replacing any row with the same id
func (r *attachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "attachmentRepository.Create")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)

	if attachment == nil {
		return ErrNilAttachment
	}
	tracing.TagEntity(span, attachment.AttachmentID)
	if r.log.IsDebugEnabled() {
		r.log.Debugf("Creating attachment : %s", attachment)
	}

	if err := r.validator.Struct(attachment); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	err := r.store.PutRow(ctx, enum.ColumnFamilyAttachment, attachment.AttachmentID, attachment.ToColumns())
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

// Delete physically removes the row, deleting a missing row is not an error
func (r *attachmentRepository) Delete(ctx context.Context, attachment *models.Attachment) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "attachmentRepository.Delete")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)

	if attachment == nil {
		return ErrNilAttachment
	}
	tracing.TagEntity(span, attachment.AttachmentID)
	if r.log.IsDebugEnabled() {
		r.log.Debugf("Deleting attachment : %s", attachment)
	}

	if err := r.store.DeleteRow(ctx, enum.ColumnFamilyAttachment, attachment.AttachmentID); err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

// DeleteRemoved deletes the attachment only if it is still tombstoned, so a
// re-created attachment survives. It reports whether the row was deleted.
func (r *attachmentRepository) DeleteRemoved(ctx context.Context, attachment *models.Attachment) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "attachmentRepository.DeleteRemoved")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)

	if attachment == nil {
		return false, ErrNilAttachment
	}
	tracing.TagEntity(span, attachment.AttachmentID)

	deleted, err := r.store.DeleteRowIf(ctx, enum.ColumnFamilyAttachment, attachment.AttachmentID, models.AttachmentColumnRemoved, "true")
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}
	span.LogKV("result.deleted", deleted)
	return deleted, nil
}

// FindByFilename looks the attachment up using filename as the row key.
// Any failure reads as absence.
func (r *attachmentRepository) FindByFilename(ctx context.Context, filename string) *models.Attachment {
	span, ctx := opentracing.StartSpanFromContext(ctx, "attachmentRepository.FindByFilename")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, filename)

	return r.find(ctx, span, filename)
}

// FindByStatusID returns the live attachment of a status, nil when there is
// none or it was removed
func (r *attachmentRepository) FindByStatusID(ctx context.Context, statusID string) *models.Attachment {
	if statusID == "" {
		return nil
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "attachmentRepository.FindByStatusID")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	attachment := r.find(ctx, span, statusID)
	if attachment == nil || attachment.Removed {
		return nil
	}
	return attachment
}

func (r *attachmentRepository) find(ctx context.Context, span opentracing.Span, key string) *models.Attachment {
	if key == "" {
		return nil
	}

	columns, err := r.store.GetRow(ctx, enum.ColumnFamilyAttachment, key)
	if err != nil {
		if !errors.Is(err, columnstore.ErrRowNotFound) {
			tracing.TraceErr(span, err)
			if r.log.IsDebugEnabled() {
				r.log.Debugf("Exception while looking for attachment %s : %v", key, err)
			}
		}
		return nil
	}
	return models.AttachmentFromColumns(key, columns)
}

// Remove tombstones the attachment, the row stays in the store
func (r *attachmentRepository) Remove(ctx context.Context, attachment *models.Attachment) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "attachmentRepository.Remove")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)

	if attachment == nil {
		return ErrNilAttachment
	}
	tracing.TagEntity(span, attachment.AttachmentID)
	if r.log.IsDebugEnabled() {
		r.log.Debugf("Removing attachment : %s", attachment)
	}

	tombstone := *attachment
	tombstone.Removed = true
	err := r.store.PutRow(ctx, enum.ColumnFamilyAttachment, tombstone.AttachmentID, tombstone.ToColumns())
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	attachment.Removed = true
	return nil
}

// ListRemoved returns every tombstoned attachment
func (r *attachmentRepository) ListRemoved(ctx context.Context) ([]*models.Attachment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "attachmentRepository.ListRemoved")
	defer span.Finish()
	tracing.SetDefaultRepositorySpanTags(ctx, span)

	var removed []*models.Attachment
	err := r.store.ScanRows(ctx, enum.ColumnFamilyAttachment, func(rowKey string, columns map[string]string) error {
		attachment := models.AttachmentFromColumns(rowKey, columns)
		if attachment.Removed {
			removed = append(removed, attachment)
		}
		return nil
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.LogKV("result.count", len(removed))
	return removed, nil
}

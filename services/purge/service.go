package purge

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/tracing"
)

type attachmentPurgeService struct {
	attachments interfaces.AttachmentRepository
	archive     interfaces.AttachmentArchive
	log         logger.Logger
}

// NewAttachmentPurgeService hard deletes tombstoned attachments, copying
// them to archive first when one is given
func NewAttachmentPurgeService(attachments interfaces.AttachmentRepository, archive interfaces.AttachmentArchive, log logger.Logger) interfaces.AttachmentPurgeService {
	return &attachmentPurgeService{
		attachments: attachments,
		archive:     archive,
		log:         log,
	}
}

// PurgeRemovedAttachments returns how many attachments were deleted. An
// attachment whose archive upload fails stays in place for the next run,
// one re-created since it was listed is left alone.
func (s *attachmentPurgeService) PurgeRemovedAttachments(ctx context.Context) (int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AttachmentPurgeService.PurgeRemovedAttachments")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	removed, err := s.attachments.ListRemoved(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, errors.Wrap(err, "list removed attachments")
	}

	purged := 0
	var failed []string
	for _, attachment := range removed {
		if err := ctx.Err(); err != nil {
			return purged, err
		}

		if s.archive != nil {
			key, err := s.archive.Archive(ctx, attachment)
			if err != nil {
				s.log.Warnf("Skipping purge of attachment %s: %v", attachment.AttachmentID, err)
				failed = append(failed, attachment.AttachmentID)
				continue
			}
			s.log.Debugf("Archived attachment %s to %s", attachment.AttachmentID, key)
		}

		deleted, err := s.attachments.DeleteRemoved(ctx, attachment)
		if err != nil {
			s.log.Errorf("Failed to delete attachment %s: %v", attachment.AttachmentID, err)
			failed = append(failed, attachment.AttachmentID)
			continue
		}
		if !deleted {
			s.log.Infof("Attachment %s was saved again, not purging it", attachment.AttachmentID)
			continue
		}
		purged++
	}

	span.LogKV("result.purged", purged, "result.failed", len(failed))
	if len(failed) > 0 {
		err := errors.Errorf("could not purge %d of %d attachments", len(failed), len(removed))
		tracing.TraceErr(span, err)
		return purged, err
	}
	return purged, nil
}

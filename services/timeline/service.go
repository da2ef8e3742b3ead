package timeline

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/customeros/statusstack/dto"
	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/enum"
	apperrors "github.com/customeros/statusstack/internal/errors"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/models"
	"github.com/customeros/statusstack/internal/repository"
	"github.com/customeros/statusstack/internal/tracing"
	"github.com/customeros/statusstack/internal/utils"
)

type timelineService struct {
	repos     *repository.Repositories
	publisher interfaces.EventPublisher
	log       logger.Logger
}

func NewTimelineService(repos *repository.Repositories, publisher interfaces.EventPublisher, log logger.Logger) interfaces.TimelineService {
	return &timelineService{
		repos:     repos,
		publisher: publisher,
		log:       log,
	}
}

// GetStatus returns nil, nil for unknown or removed statuses
func (s *timelineService) GetStatus(ctx context.Context, statusID string) (*models.Status, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TimelineService.GetStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	status, err := s.repos.StatusRepository.FindByID(ctx, statusID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if status == nil {
		return nil, nil
	}
	if err := s.enrich(ctx, status); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return status, nil
}

func (s *timelineService) GetAttachment(ctx context.Context, statusID string) *models.Attachment {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TimelineService.GetAttachment")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	return s.repos.AttachmentRepository.FindByStatusID(ctx, statusID)
}

// GetStatusDetails returns the discussion the status belongs to, the status
// itself excluded, and who shared it. Unknown statuses give nil, nil.
func (s *timelineService) GetStatusDetails(ctx context.Context, statusID string) (*models.StatusDetails, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TimelineService.GetStatusDetails")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	status, err := s.repos.StatusRepository.FindByID(ctx, statusID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if status == nil {
		return nil, nil
	}

	rootID := status.StatusID
	if status.ReplyTo != "" {
		rootID = status.ReplyTo
	}
	discussionIDs := []string{}
	if rootID != status.StatusID {
		discussionIDs = append(discussionIDs, rootID)
	}
	replyIDs, err := s.repos.DiscussionRepository.GetReplies(ctx, rootID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	for _, replyID := range replyIDs {
		if replyID != status.StatusID {
			discussionIDs = append(discussionIDs, replyID)
		}
	}

	discussion, err := s.loadStatuses(ctx, discussionIDs)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	sharedBy, err := s.repos.SharesRepository.GetSharedBy(ctx, status.StatusID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return &models.StatusDetails{
		StatusID:           status.StatusID,
		DiscussionStatuses: discussion,
		SharedByLogins:     sharedBy,
	}, nil
}

// ShareStatus puts someone's status on the lines of the current user
func (s *timelineService) ShareStatus(ctx context.Context, statusID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TimelineService.ShareStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	if err := utils.ValidateUserLogin(ctx); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	status, err := s.repos.StatusRepository.FindByID(ctx, statusID)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if status == nil {
		return apperrors.ErrStatusNotFound
	}

	login := utils.GetUserLoginFromContext(ctx)
	username := utils.GetUsernameFromContext(ctx)
	if err := s.repos.SharesRepository.AddShare(ctx, status.StatusID, login); err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if err := s.repos.TimelineRepository.AddStatusToTimeline(ctx, username, status.StatusID); err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if err := s.repos.TimelineRepository.AddStatusToUserline(ctx, username, status.StatusID); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	s.publish(ctx, status.StatusID, enum.STATUS, dto.StatusShared{
		StatusID: status.StatusID,
		SharedBy: login,
	})
	return nil
}

// RemoveStatus soft deletes a status of the current user and takes it off
// the author's lines. Removing an unknown status is a no-op.
func (s *timelineService) RemoveStatus(ctx context.Context, statusID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TimelineService.RemoveStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	status, err := s.ownedStatus(ctx, statusID)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if status == nil {
		return nil
	}

	if err := s.repos.StatusRepository.Remove(ctx, status); err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if err := s.repos.TimelineRepository.RemoveStatusFromTimeline(ctx, status.Username, status.StatusID); err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if err := s.repos.TimelineRepository.RemoveStatusFromUserline(ctx, status.Username, status.StatusID); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	s.publish(ctx, status.StatusID, enum.STATUS, dto.StatusRemoved{
		StatusID: status.StatusID,
		Username: status.Username,
	})
	return nil
}

// RemoveAttachment soft deletes the attachment of a status of the current
// user. Nothing happens when the status or its attachment is gone.
func (s *timelineService) RemoveAttachment(ctx context.Context, statusID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TimelineService.RemoveAttachment")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, statusID)

	status, err := s.ownedStatus(ctx, statusID)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if status == nil {
		return nil
	}

	attachment := s.repos.AttachmentRepository.FindByStatusID(ctx, statusID)
	if attachment == nil {
		return nil
	}
	if err := s.repos.AttachmentRepository.Remove(ctx, attachment); err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

// GetTimeline pages the home timeline of the current user
func (s *timelineService) GetTimeline(ctx context.Context, query interfaces.TimelineQuery) ([]*models.Status, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TimelineService.GetTimeline")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if err := utils.ValidateUserLogin(ctx); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	ids, err := s.repos.TimelineRepository.GetTimeline(ctx, utils.GetUsernameFromContext(ctx), query)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	statuses, err := s.loadStatuses(ctx, ids)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.LogKV("result.count", len(statuses))
	return statuses, nil
}

// GetUserline pages the statuses posted or shared by username, the current
// user when username is empty
func (s *timelineService) GetUserline(ctx context.Context, username string, query interfaces.TimelineQuery) ([]*models.Status, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "TimelineService.GetUserline")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("username", username)

	if username == "" {
		if err := utils.ValidateUserLogin(ctx); err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		username = utils.GetUsernameFromContext(ctx)
	}

	ids, err := s.repos.TimelineRepository.GetUserline(ctx, username, query)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	statuses, err := s.loadStatuses(ctx, ids)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.LogKV("result.count", len(statuses))
	return statuses, nil
}

// ownedStatus loads a live status and checks the current user wrote it
func (s *timelineService) ownedStatus(ctx context.Context, statusID string) (*models.Status, error) {
	if err := utils.ValidateUserLogin(ctx); err != nil {
		return nil, err
	}
	status, err := s.repos.StatusRepository.FindByID(ctx, statusID)
	if err != nil || status == nil {
		return nil, err
	}
	if status.Username != utils.GetUsernameFromContext(ctx) {
		return nil, apperrors.ErrStatusForbidden
	}
	return status, nil
}

// loadStatuses keeps the order of ids and skips statuses removed since
func (s *timelineService) loadStatuses(ctx context.Context, ids []string) ([]*models.Status, error) {
	statuses := make([]*models.Status, 0, len(ids))
	for _, id := range ids {
		status, err := s.repos.StatusRepository.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if status == nil {
			continue
		}
		if err := s.enrich(ctx, status); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s *timelineService) enrich(ctx context.Context, status *models.Status) error {
	status.AttachmentAvailable = s.repos.AttachmentRepository.FindByStatusID(ctx, status.StatusID) != nil
	if status.ReplyTo != "" {
		status.DetailsAvailable = true
		return nil
	}
	hasReplies, err := s.repos.DiscussionRepository.HasReplies(ctx, status.StatusID)
	if err != nil {
		return err
	}
	if hasReplies {
		status.DetailsAvailable = true
		return nil
	}
	sharedBy, err := s.repos.SharesRepository.GetSharedBy(ctx, status.StatusID)
	if err != nil {
		return err
	}
	status.DetailsAvailable = len(sharedBy) > 0
	return nil
}

func (s *timelineService) publish(ctx context.Context, entityID string, entityType enum.EntityType, message interface{}) {
	if err := s.publisher.PublishFanoutEvent(ctx, entityID, entityType, message); err != nil {
		s.log.Errorf("Failed to publish %T for %s: %v", message, entityID, err)
	}
}

package status

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"golang.org/x/net/html"

	"github.com/customeros/statusstack/dto"
	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/enum"
	apperrors "github.com/customeros/statusstack/internal/errors"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/models"
	"github.com/customeros/statusstack/internal/repository"
	"github.com/customeros/statusstack/internal/tracing"
	"github.com/customeros/statusstack/internal/utils"
	"github.com/customeros/statusstack/internal/validation"
)

type statusUpdateService struct {
	repos     *repository.Repositories
	publisher interfaces.EventPublisher
	validator *validation.Validator
	log       logger.Logger
}

func NewStatusUpdateService(repos *repository.Repositories, publisher interfaces.EventPublisher, validator *validation.Validator, log logger.Logger) interfaces.StatusUpdateService {
	return &statusUpdateService{
		repos:     repos,
		publisher: publisher,
		validator: validator,
		log:       log,
	}
}

// PostStatus stores a new status of the current user and, when given, its
// attachment keyed by the new status id. The attachment is validated before
// anything is written.
func (s *statusUpdateService) PostStatus(ctx context.Context, content string, attachment *models.Attachment) (*models.Status, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "StatusUpdateService.PostStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if err := utils.ValidateUserLogin(ctx); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	status, err := s.newStatus(ctx, content)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	tracing.TagEntity(span, status.StatusID)

	if attachment != nil {
		attachment.AttachmentID = status.StatusID
		attachment.Removed = false
		fillExtension(attachment)
		if err := s.validator.Struct(attachment); err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
	}

	if err := s.createStatus(ctx, status); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	if attachment != nil {
		if err := s.repos.AttachmentRepository.Create(ctx, attachment); err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		status.AttachmentAvailable = true
		s.publish(ctx, attachment.AttachmentID, enum.ATTACHMENT, dto.AttachmentSaved{
			AttachmentID: attachment.AttachmentID,
			Filename:     attachment.Filename,
			Type:         attachment.Type,
		})
	}

	s.publish(ctx, status.StatusID, enum.STATUS, dto.StatusPosted{
		StatusID:      status.StatusID,
		Username:      status.Username,
		Domain:        status.Domain,
		HasAttachment: attachment != nil,
	})

	return status, nil
}

// ReplyToStatus posts a status answering replyToStatusID and links it into
// the discussion of that status
func (s *statusUpdateService) ReplyToStatus(ctx context.Context, content, replyToStatusID string) (*models.Status, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "StatusUpdateService.ReplyToStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("replyTo", replyToStatusID)

	if err := utils.ValidateUserLogin(ctx); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	original, err := s.repos.StatusRepository.FindByID(ctx, replyToStatusID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if original == nil {
		return nil, apperrors.ErrStatusNotFound
	}

	reply, err := s.newStatus(ctx, content)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	reply.ReplyTo = original.StatusID
	reply.ReplyToUsername = original.Username
	tracing.TagEntity(span, reply.StatusID)

	if err := s.createStatus(ctx, reply); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if err := s.repos.DiscussionRepository.AddReply(ctx, original.StatusID, reply.StatusID); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	reply.DetailsAvailable = true

	s.publish(ctx, reply.StatusID, enum.STATUS, dto.StatusPosted{
		StatusID: reply.StatusID,
		Username: reply.Username,
		Domain:   reply.Domain,
		ReplyTo:  reply.ReplyTo,
	})

	return reply, nil
}

// SaveAttachment stores the attachment of an existing status of the current user
func (s *statusUpdateService) SaveAttachment(ctx context.Context, attachment *models.Attachment) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "StatusUpdateService.SaveAttachment")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if err := utils.ValidateUserLogin(ctx); err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if attachment == nil {
		return repository.ErrNilAttachment
	}
	tracing.TagEntity(span, attachment.AttachmentID)

	attachment.Removed = false
	fillExtension(attachment)
	if err := s.validator.Struct(attachment); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	status, err := s.repos.StatusRepository.FindByID(ctx, attachment.AttachmentID)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if status == nil {
		return apperrors.ErrStatusNotFound
	}
	if status.Username != utils.GetUsernameFromContext(ctx) {
		return apperrors.ErrStatusForbidden
	}

	if err := s.repos.AttachmentRepository.Create(ctx, attachment); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	s.publish(ctx, attachment.AttachmentID, enum.ATTACHMENT, dto.AttachmentSaved{
		AttachmentID: attachment.AttachmentID,
		Filename:     attachment.Filename,
		Type:         attachment.Type,
	})
	return nil
}

func (s *statusUpdateService) newStatus(ctx context.Context, content string) (*models.Status, error) {
	statusID, err := utils.NewTimeUUID()
	if err != nil {
		return nil, err
	}
	return &models.Status{
		StatusID:   statusID,
		Username:   utils.GetUsernameFromContext(ctx),
		Domain:     utils.GetDomainFromContext(ctx),
		Content:    html.EscapeString(content),
		StatusDate: utils.Now(),
	}, nil
}

// createStatus stores the status and puts it on the author's lines
func (s *statusUpdateService) createStatus(ctx context.Context, status *models.Status) error {
	if s.log.IsDebugEnabled() {
		s.log.Debugf("Persisting status %s : %s", status.StatusID, status.Content)
	}
	if err := s.repos.StatusRepository.Create(ctx, status); err != nil {
		return err
	}
	if err := s.repos.TimelineRepository.AddStatusToUserline(ctx, status.Username, status.StatusID); err != nil {
		return err
	}
	return s.repos.TimelineRepository.AddStatusToTimeline(ctx, status.Username, status.StatusID)
}

func (s *statusUpdateService) publish(ctx context.Context, entityID string, entityType enum.EntityType, message interface{}) {
	if err := s.publisher.PublishFanoutEvent(ctx, entityID, entityType, message); err != nil {
		s.log.Errorf("Failed to publish %T for %s: %v", message, entityID, err)
	}
}

func fillExtension(attachment *models.Attachment) {
	if attachment.Extension != "" {
		return
	}
	attachment.Extension = utils.ExtensionFromFilename(attachment.Filename)
	if attachment.Extension == "" {
		attachment.Extension = utils.ExtensionFromContentType(attachment.Type)
	}
}

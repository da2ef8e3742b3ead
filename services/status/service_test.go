package status

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/columnstore"
	"github.com/customeros/statusstack/internal/enum"
	apperrors "github.com/customeros/statusstack/internal/errors"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/models"
	"github.com/customeros/statusstack/internal/repository"
	"github.com/customeros/statusstack/internal/utils"
	"github.com/customeros/statusstack/internal/validation"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishFanoutEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	return m.Called(ctx, entityId, entityType, message).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func setup(t *testing.T) (*repository.Repositories, *mockPublisher, interfaces.StatusUpdateService) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	store := columnstore.NewBadgerStore(db)
	t.Cleanup(func() { _ = store.Close() })

	validator := validation.NewValidator()
	log := getLogger()
	repos := repository.InitRepositories(store, validator, log, repository.CacheConfig{Size: 16})
	publisher := &mockPublisher{}
	publisher.On("PublishFanoutEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	return repos, publisher, NewStatusUpdateService(repos, publisher, validator, log)
}

func userContext(login string) context.Context {
	return utils.SetUserLoginInContext(context.Background(), login)
}

func TestPostStatus(t *testing.T) {
	repos, publisher, service := setup(t)
	ctx := userContext("jdoe@example.com")

	status, err := service.PostStatus(ctx, "<b>hello</b>", nil)

	require.NoError(t, err)
	assert.Equal(t, "jdoe", status.Username)
	assert.Equal(t, "example.com", status.Domain)
	assert.Equal(t, "&lt;b&gt;hello&lt;/b&gt;", status.Content)

	stored, err := repos.StatusRepository.FindByID(ctx, status.StatusID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, status.Content, stored.Content)

	userline, err := repos.TimelineRepository.GetUserline(ctx, "jdoe", interfaces.TimelineQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{status.StatusID}, userline)
	timeline, err := repos.TimelineRepository.GetTimeline(ctx, "jdoe", interfaces.TimelineQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{status.StatusID}, timeline)

	publisher.AssertCalled(t, "PublishFanoutEvent", mock.Anything, status.StatusID, enum.STATUS, mock.AnythingOfType("dto.StatusPosted"))
}

func TestPostStatus_WithAttachment(t *testing.T) {
	repos, publisher, service := setup(t)
	ctx := userContext("jdoe@example.com")

	status, err := service.PostStatus(ctx, "look", &models.Attachment{
		Filename: "Photo.PNG",
		Type:     "image/png",
		Content:  "aGVsbG8=",
	})

	require.NoError(t, err)
	assert.True(t, status.AttachmentAvailable)
	attachment := repos.AttachmentRepository.FindByStatusID(ctx, status.StatusID)
	require.NotNil(t, attachment)
	assert.Equal(t, status.StatusID, attachment.AttachmentID)
	assert.Equal(t, "png", attachment.Extension)
	publisher.AssertCalled(t, "PublishFanoutEvent", mock.Anything, status.StatusID, enum.ATTACHMENT, mock.AnythingOfType("dto.AttachmentSaved"))
}

func TestPostStatus_InvalidAttachmentWritesNothing(t *testing.T) {
	repos, publisher, service := setup(t)
	ctx := userContext("jdoe@example.com")

	_, err := service.PostStatus(ctx, "look", &models.Attachment{Content: "aGVsbG8="})

	validationErr, ok := apperrors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"filename"}, validationErr.Fields())
	userline, err := repos.TimelineRepository.GetUserline(ctx, "jdoe", interfaces.TimelineQuery{})
	require.NoError(t, err)
	assert.Empty(t, userline)
	publisher.AssertNotCalled(t, "PublishFanoutEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostStatus_EmptyContent(t *testing.T) {
	_, _, service := setup(t)

	_, err := service.PostStatus(userContext("jdoe@example.com"), "", nil)

	validationErr, ok := apperrors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"content"}, validationErr.Fields())
}

func TestPostStatus_RequiresUser(t *testing.T) {
	_, _, service := setup(t)

	_, err := service.PostStatus(context.Background(), "hello", nil)

	assert.ErrorIs(t, err, apperrors.ErrUserLoginMissing)
}

func TestPostStatus_PublishFailureIsIgnored(t *testing.T) {
	_, publisher, service := setup(t)
	publisher.ExpectedCalls = nil
	publisher.On("PublishFanoutEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	status, err := service.PostStatus(userContext("jdoe@example.com"), "hello", nil)

	require.NoError(t, err)
	assert.NotEmpty(t, status.StatusID)
}

func TestReplyToStatus(t *testing.T) {
	repos, _, service := setup(t)
	original, err := service.PostStatus(userContext("amy@example.com"), "question?", nil)
	require.NoError(t, err)

	ctx := userContext("jdoe@example.com")
	reply, err := service.ReplyToStatus(ctx, "answer", original.StatusID)

	require.NoError(t, err)
	assert.Equal(t, original.StatusID, reply.ReplyTo)
	assert.Equal(t, "amy", reply.ReplyToUsername)
	replies, err := repos.DiscussionRepository.GetReplies(ctx, original.StatusID)
	require.NoError(t, err)
	assert.Equal(t, []string{reply.StatusID}, replies)
}

func TestReplyToStatus_UnknownStatus(t *testing.T) {
	_, _, service := setup(t)

	_, err := service.ReplyToStatus(userContext("jdoe@example.com"), "answer", "unknown")

	assert.ErrorIs(t, err, apperrors.ErrStatusNotFound)
}

func TestSaveAttachment(t *testing.T) {
	repos, _, service := setup(t)
	ctx := userContext("jdoe@example.com")
	status, err := service.PostStatus(ctx, "hello", nil)
	require.NoError(t, err)

	err = service.SaveAttachment(ctx, &models.Attachment{
		AttachmentID: status.StatusID,
		Filename:     "notes",
		Type:         "text/plain",
		Content:      "aGk=",
	})

	require.NoError(t, err)
	attachment := repos.AttachmentRepository.FindByStatusID(ctx, status.StatusID)
	require.NotNil(t, attachment)
	assert.Equal(t, "txt", attachment.Extension)
}

func TestSaveAttachment_Errors(t *testing.T) {
	_, _, service := setup(t)
	status, err := service.PostStatus(userContext("amy@example.com"), "hello", nil)
	require.NoError(t, err)
	ctx := userContext("jdoe@example.com")

	err = service.SaveAttachment(ctx, &models.Attachment{AttachmentID: status.StatusID})
	_, ok := apperrors.AsValidationError(err)
	assert.True(t, ok)

	err = service.SaveAttachment(ctx, &models.Attachment{AttachmentID: "unknown", Filename: "a.txt"})
	assert.ErrorIs(t, err, apperrors.ErrStatusNotFound)

	err = service.SaveAttachment(ctx, &models.Attachment{AttachmentID: status.StatusID, Filename: "a.txt"})
	assert.ErrorIs(t, err, apperrors.ErrStatusForbidden)
}


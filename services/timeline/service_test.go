package timeline

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v3"
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
	"github.com/customeros/statusstack/services/status"
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

type fixture struct {
	repos     *repository.Repositories
	publisher *mockPublisher
	statuses  interfaces.StatusUpdateService
	timeline  interfaces.TimelineService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	store := columnstore.NewBadgerStore(db)
	t.Cleanup(func() { _ = store.Close() })

	log := logger.NewAppLogger(&logger.Config{DevMode: true})
	log.InitLogger()
	validator := validation.NewValidator()
	repos := repository.InitRepositories(store, validator, log, repository.CacheConfig{Size: 16})
	publisher := &mockPublisher{}
	publisher.On("PublishFanoutEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	return &fixture{
		repos:     repos,
		publisher: publisher,
		statuses:  status.NewStatusUpdateService(repos, publisher, validator, log),
		timeline:  NewTimelineService(repos, publisher, log),
	}
}

func userContext(login string) context.Context {
	return utils.SetUserLoginInContext(context.Background(), login)
}

func (f *fixture) post(t *testing.T, login, content string, attachment *models.Attachment) *models.Status {
	t.Helper()
	posted, err := f.statuses.PostStatus(userContext(login), content, attachment)
	require.NoError(t, err)
	return posted
}

func statusIDs(statuses []*models.Status) []string {
	ids := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ids = append(ids, s.StatusID)
	}
	return ids
}

func TestGetStatus(t *testing.T) {
	f := setup(t)
	posted := f.post(t, "jdoe@example.com", "hello", &models.Attachment{Filename: "a.txt", Content: "aGk="})

	found, err := f.timeline.GetStatus(context.Background(), posted.StatusID)

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "hello", found.Content)
	assert.True(t, found.AttachmentAvailable)
	assert.False(t, found.DetailsAvailable)

	unknown, err := f.timeline.GetStatus(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestGetAttachment(t *testing.T) {
	f := setup(t)
	posted := f.post(t, "jdoe@example.com", "hello", &models.Attachment{Filename: "a.txt", Content: "aGk="})

	attachment := f.timeline.GetAttachment(context.Background(), posted.StatusID)

	require.NotNil(t, attachment)
	assert.Equal(t, "a.txt", attachment.Filename)
	assert.Nil(t, f.timeline.GetAttachment(context.Background(), ""))
}

func TestRemoveAttachmentThenStatus(t *testing.T) {
	f := setup(t)
	ctx := userContext("jdoe@example.com")
	posted := f.post(t, "jdoe@example.com", "hello", &models.Attachment{Filename: "a.txt", Content: "aGk="})

	require.NoError(t, f.timeline.RemoveAttachment(ctx, posted.StatusID))
	require.NoError(t, f.timeline.RemoveStatus(ctx, posted.StatusID))

	assert.Nil(t, f.timeline.GetAttachment(ctx, posted.StatusID))
	found, err := f.timeline.GetStatus(ctx, posted.StatusID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// the attachment row is tombstoned, not deleted
	raw := f.repos.AttachmentRepository.FindByFilename(ctx, posted.StatusID)
	require.NotNil(t, raw)
	assert.True(t, raw.Removed)

	timeline, err := f.timeline.GetTimeline(ctx, interfaces.TimelineQuery{Count: 20})
	require.NoError(t, err)
	assert.Empty(t, timeline)

	f.publisher.AssertCalled(t, "PublishFanoutEvent", mock.Anything, posted.StatusID, enum.STATUS, mock.AnythingOfType("dto.StatusRemoved"))
}

func TestRemove_OtherUsersStatus(t *testing.T) {
	f := setup(t)
	posted := f.post(t, "amy@example.com", "mine", &models.Attachment{Filename: "a.txt", Content: "aGk="})
	ctx := userContext("jdoe@example.com")

	assert.ErrorIs(t, f.timeline.RemoveAttachment(ctx, posted.StatusID), apperrors.ErrStatusForbidden)
	assert.ErrorIs(t, f.timeline.RemoveStatus(ctx, posted.StatusID), apperrors.ErrStatusForbidden)
	assert.NotNil(t, f.timeline.GetAttachment(ctx, posted.StatusID))
}

func TestRemove_UnknownStatusIsNoop(t *testing.T) {
	f := setup(t)
	ctx := userContext("jdoe@example.com")

	assert.NoError(t, f.timeline.RemoveAttachment(ctx, "unknown"))
	assert.NoError(t, f.timeline.RemoveStatus(ctx, "unknown"))
}

func TestRemoveAttachment_WithoutLiveStatusLeavesAttachment(t *testing.T) {
	f := setup(t)
	posted := f.post(t, "amy@example.com", "mine", &models.Attachment{Filename: "a.txt", Content: "aGk="})
	require.NoError(t, f.timeline.RemoveStatus(userContext("amy@example.com"), posted.StatusID))
	ctx := userContext("jdoe@example.com")

	assert.NoError(t, f.timeline.RemoveAttachment(ctx, posted.StatusID))

	raw := f.repos.AttachmentRepository.FindByFilename(ctx, posted.StatusID)
	require.NotNil(t, raw)
	assert.False(t, raw.Removed)
}

func TestShareStatus(t *testing.T) {
	f := setup(t)
	posted := f.post(t, "amy@example.com", "worth sharing", nil)
	ctx := userContext("jdoe@example.com")

	require.NoError(t, f.timeline.ShareStatus(ctx, posted.StatusID))

	timeline, err := f.timeline.GetTimeline(ctx, interfaces.TimelineQuery{Count: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{posted.StatusID}, statusIDs(timeline))
	assert.True(t, timeline[0].DetailsAvailable)

	details, err := f.timeline.GetStatusDetails(ctx, posted.StatusID)
	require.NoError(t, err)
	assert.Equal(t, []string{"jdoe@example.com"}, details.SharedByLogins)

	assert.ErrorIs(t, f.timeline.ShareStatus(ctx, "unknown"), apperrors.ErrStatusNotFound)
}

func TestGetStatusDetails_Discussion(t *testing.T) {
	f := setup(t)
	original := f.post(t, "amy@example.com", "question?", nil)
	first, err := f.statuses.ReplyToStatus(userContext("jdoe@example.com"), "first", original.StatusID)
	require.NoError(t, err)
	second, err := f.statuses.ReplyToStatus(userContext("bob@example.com"), "second", original.StatusID)
	require.NoError(t, err)

	details, err := f.timeline.GetStatusDetails(context.Background(), original.StatusID)
	require.NoError(t, err)
	assert.Equal(t, original.StatusID, details.StatusID)
	assert.Equal(t, []string{first.StatusID, second.StatusID}, statusIDs(details.DiscussionStatuses))
	assert.Empty(t, details.SharedByLogins)

	fromReply, err := f.timeline.GetStatusDetails(context.Background(), second.StatusID)
	require.NoError(t, err)
	assert.Equal(t, []string{original.StatusID, first.StatusID}, statusIDs(fromReply.DiscussionStatuses))

	none, err := f.timeline.GetStatusDetails(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGetTimelineAndUserline_Paging(t *testing.T) {
	f := setup(t)
	var posted []*models.Status
	for _, content := range []string{"one", "two", "three", "four"} {
		posted = append(posted, f.post(t, "jdoe@example.com", content, nil))
	}
	ctx := userContext("jdoe@example.com")

	page, err := f.timeline.GetTimeline(ctx, interfaces.TimelineQuery{Count: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{posted[3].StatusID, posted[2].StatusID}, statusIDs(page))

	next, err := f.timeline.GetTimeline(ctx, interfaces.TimelineQuery{Count: 2, MaxID: page[1].StatusID})
	require.NoError(t, err)
	assert.Equal(t, []string{posted[1].StatusID, posted[0].StatusID}, statusIDs(next))

	newer, err := f.timeline.GetUserline(context.Background(), "jdoe", interfaces.TimelineQuery{Count: 20, SinceID: posted[2].StatusID})
	require.NoError(t, err)
	assert.Equal(t, []string{posted[3].StatusID}, statusIDs(newer))

	own, err := f.timeline.GetUserline(ctx, "", interfaces.TimelineQuery{Count: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{posted[3].StatusID}, statusIDs(own))
}

func TestGetTimeline_Errors(t *testing.T) {
	f := setup(t)

	_, err := f.timeline.GetTimeline(context.Background(), interfaces.TimelineQuery{})
	assert.ErrorIs(t, err, apperrors.ErrUserLoginMissing)

	_, err = f.timeline.GetTimeline(userContext("jdoe@example.com"), interfaces.TimelineQuery{SinceID: "bogus"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCursor)
}

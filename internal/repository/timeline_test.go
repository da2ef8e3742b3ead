package repository

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/statusstack/interfaces"
	apperrors "github.com/customeros/statusstack/internal/errors"
	"github.com/customeros/statusstack/internal/utils"
)

func newTimeUUIDs(t *testing.T, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		id, err := utils.NewTimeUUID()
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

func TestTimelineRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewTimelineRepository(newInMemoryStore(t))
	ids := newTimeUUIDs(t, 3)
	for _, id := range ids {
		require.NoError(t, repo.AddStatusToTimeline(ctx, "jdoe", id))
	}

	result, err := repo.GetTimeline(ctx, "jdoe", interfaces.TimelineQuery{Count: 20})

	require.NoError(t, err)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, result)
}

func TestTimelineRepository_Paging(t *testing.T) {
	ctx := context.Background()
	repo := NewTimelineRepository(newInMemoryStore(t))
	ids := newTimeUUIDs(t, 6)
	for _, id := range ids {
		require.NoError(t, repo.AddStatusToUserline(ctx, "jdoe", id))
	}

	tests := []struct {
		name     string
		query    interfaces.TimelineQuery
		expected []string
	}{
		{"count", interfaces.TimelineQuery{Count: 2}, []string{ids[5], ids[4]}},
		{"max id exclusive", interfaces.TimelineQuery{Count: 2, MaxID: ids[4]}, []string{ids[3], ids[2]}},
		{"since id exclusive", interfaces.TimelineQuery{Count: 10, SinceID: ids[3]}, []string{ids[5], ids[4]}},
		{"window", interfaces.TimelineQuery{Count: 10, SinceID: ids[0], MaxID: ids[3]}, []string{ids[2], ids[1]}},
		{"no count", interfaces.TimelineQuery{}, []string{ids[5], ids[4], ids[3], ids[2], ids[1], ids[0]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.GetUserline(ctx, "jdoe", tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTimelineRepository_InvalidCursor(t *testing.T) {
	repo := NewTimelineRepository(newInMemoryStore(t))

	_, err := repo.GetTimeline(context.Background(), "jdoe", interfaces.TimelineQuery{MaxID: "not-a-uuid"})

	assert.True(t, errors.Is(err, apperrors.ErrInvalidCursor))
}

func TestTimelineRepository_Remove(t *testing.T) {
	ctx := context.Background()
	repo := NewTimelineRepository(newInMemoryStore(t))
	ids := newTimeUUIDs(t, 2)
	for _, id := range ids {
		require.NoError(t, repo.AddStatusToTimeline(ctx, "jdoe", id))
		require.NoError(t, repo.AddStatusToUserline(ctx, "jdoe", id))
	}

	require.NoError(t, repo.RemoveStatusFromTimeline(ctx, "jdoe", ids[0]))
	require.NoError(t, repo.RemoveStatusFromUserline(ctx, "jdoe", ids[1]))

	timeline, err := repo.GetTimeline(ctx, "jdoe", interfaces.TimelineQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1]}, timeline)
	userline, err := repo.GetUserline(ctx, "jdoe", interfaces.TimelineQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0]}, userline)
}

func TestTimelineRepository_UnknownUser(t *testing.T) {
	repo := NewTimelineRepository(newInMemoryStore(t))

	result, err := repo.GetTimeline(context.Background(), "nobody", interfaces.TimelineQuery{Count: 20})

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestDiscussionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDiscussionRepository(newInMemoryStore(t))
	ids := newTimeUUIDs(t, 3)

	hasReplies, err := repo.HasReplies(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, hasReplies)

	require.NoError(t, repo.AddReply(ctx, ids[0], ids[2]))
	require.NoError(t, repo.AddReply(ctx, ids[0], ids[1]))

	hasReplies, err = repo.HasReplies(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, hasReplies)
	replies, err := repo.GetReplies(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1], ids[2]}, replies)
}

func TestSharesRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSharesRepository(newInMemoryStore(t))

	require.NoError(t, repo.AddShare(ctx, "status-1", "zed@example.com"))
	require.NoError(t, repo.AddShare(ctx, "status-1", "amy@example.com"))
	require.NoError(t, repo.AddShare(ctx, "status-1", "amy@example.com"))

	logins, err := repo.GetSharedBy(ctx, "status-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"amy@example.com", "zed@example.com"}, logins)

	none, err := repo.GetSharedBy(ctx, "status-2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeUUID_Ordering(t *testing.T) {
	first, err := NewTimeUUID()
	require.NoError(t, err)
	second, err := NewTimeUUID()
	require.NoError(t, err)

	assert.Equal(t, -1, CompareTimeUUIDs(first, second))
	assert.Equal(t, 1, CompareTimeUUIDs(second, first))
	assert.Equal(t, 0, CompareTimeUUIDs(first, first))
}

func TestTimeOfUUID(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id, err := NewTimeUUID()
	require.NoError(t, err)

	created, err := TimeOfUUID(id)
	require.NoError(t, err)
	assert.True(t, created.After(before))
	assert.True(t, created.Before(time.Now().Add(time.Second)))
}

func TestTimeUUIDTicks_RejectsOtherVersions(t *testing.T) {
	_, err := TimeUUIDTicks(uuid.NewString())
	assert.Error(t, err)

	_, err = TimeUUIDTicks("not-a-uuid")
	assert.Error(t, err)
}

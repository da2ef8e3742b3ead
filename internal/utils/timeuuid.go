package utils

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var timeUUIDState struct {
	sync.Mutex
	lastTicks int64
}

// NewTimeUUID returns a version 1 (time based) UUID. Ids generated by this
// process have strictly increasing timestamps, statuses sort by them.
func NewTimeUUID() (string, error) {
	timeUUIDState.Lock()
	defer timeUUIDState.Unlock()

	for {
		id, err := uuid.NewUUID()
		if err != nil {
			return "", errors.Wrap(err, "generate time uuid")
		}
		ticks := int64(id.Time())
		if ticks > timeUUIDState.lastTicks {
			timeUUIDState.lastTicks = ticks
			return id.String(), nil
		}
	}
}

// TimeUUIDTicks returns the 100ns ticks embedded in a version 1 UUID
func TimeUUIDTicks(s string) (int64, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parse uuid %q", s)
	}
	if id.Version() != 1 {
		return 0, errors.Errorf("uuid %q is not time based", s)
	}
	return int64(id.Time()), nil
}

// TimeOfUUID returns the creation time of a version 1 UUID
func TimeOfUUID(s string) (time.Time, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse uuid %q", s)
	}
	if id.Version() != 1 {
		return time.Time{}, errors.Errorf("uuid %q is not time based", s)
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec).UTC(), nil
}

// CompareTimeUUIDs orders two time UUIDs by timestamp, then lexically
func CompareTimeUUIDs(a, b string) int {
	ta, errA := TimeUUIDTicks(a)
	tb, errB := TimeUUIDTicks(b)
	if errA == nil && errB == nil && ta != tb {
		if ta < tb {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

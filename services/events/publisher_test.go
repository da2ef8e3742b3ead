package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/statusstack/dto"
	"github.com/customeros/statusstack/internal/enum"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/utils"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestNewEvent(t *testing.T) {
	ctx := utils.WithCustomContext(context.Background(), &utils.CustomContext{
		AppSource: "statusstack",
		UserLogin: "jdoe@example.com",
	})
	span := opentracing.NoopTracer{}.StartSpan("test")

	event := newEvent(ctx, span, "status-1", enum.STATUS, &dto.StatusShared{StatusID: "status-1", SharedBy: "jdoe@example.com"})

	assert.Equal(t, "StatusShared", event.Event.EventType)
	assert.Equal(t, "status-1", event.Event.EntityId)
	assert.Equal(t, enum.STATUS, event.Event.EntityType)
	assert.Regexp(t, `^event_[a-z0-9]{21}$`, event.Event.Id)
	assert.Equal(t, "statusstack", event.Metadata.AppSource)
	assert.Equal(t, "jdoe@example.com", event.Metadata.UserLogin)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sharedBy":"jdoe@example.com"`)
}

func TestNewEventsService_WithoutURLUsesNoop(t *testing.T) {
	service, err := NewEventsService("", getLogger(), nil)

	require.NoError(t, err)
	assert.IsType(t, &NoopPublisher{}, service.Publisher)
	assert.NoError(t, service.Publisher.PublishFanoutEvent(context.Background(), "id", enum.STATUS, dto.StatusPosted{}))
	assert.NoError(t, service.Close())
}

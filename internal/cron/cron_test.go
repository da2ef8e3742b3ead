package cron

import (
	"context"
	"testing"

	cronv3 "github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes"

	cron_config "github.com/customeros/statusstack/internal/cron/config"
	"github.com/customeros/statusstack/internal/logger"
)

type mockKubernetesInterface struct {
	kubernetes.Interface
	mock.Mock
}

type mockPurgeService struct {
	mock.Mock
}

func (m *mockPurgeService) PurgeRemovedAttachments(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func testConfig() *cron_config.Config {
	return &cron_config.Config{
		CronScheduleHeartbeat:        "0 * * * * *",
		CronSchedulePurgeAttachments: "0 0 3 * * *",
		LeaderLeaseName:              "statusstack-cron-leader",
	}
}

func TestNewCronManager(t *testing.T) {
	// Arrange
	cfg := testConfig()
	log := getLogger()
	k8s := &mockKubernetesInterface{}

	// Act
	cm := NewCronManager(cfg, log, k8s, &mockPurgeService{})

	// Assert
	assert.NotNil(t, cm)
	assert.Equal(t, cfg, cm.cfg)
	assert.Equal(t, log, cm.log)
	assert.Equal(t, k8s, cm.k8s)
	assert.NotNil(t, cm.jobIDs)
}

func TestCronManager_RegisterJobs(t *testing.T) {
	// Arrange
	cm := NewCronManager(testConfig(), getLogger(), nil, &mockPurgeService{})
	c := cronv3.New(cronv3.WithSeconds())

	// Act
	err := cm.registerJobs(c)

	// Assert
	require.NoError(t, err)
	assert.Len(t, cm.jobIDs, 2)
	assert.Contains(t, cm.jobIDs, "heartbeat")
	assert.Contains(t, cm.jobIDs, "purge_attachments")
	assert.Len(t, c.Entries(), 2)
}

func TestCronManager_RegisterJobs_WithoutPurgeService(t *testing.T) {
	cm := NewCronManager(testConfig(), getLogger(), nil, nil)

	require.NoError(t, cm.registerJobs(cronv3.New(cronv3.WithSeconds())))

	assert.Len(t, cm.jobIDs, 1)
}

func TestCronManager_RegisterJobs_InvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.CronSchedulePurgeAttachments = "every day"
	cm := NewCronManager(cfg, getLogger(), nil, &mockPurgeService{})

	err := cm.registerJobs(cronv3.New(cronv3.WithSeconds()))

	assert.Error(t, err)
}

func TestCronManager_PurgeRemovedAttachments(t *testing.T) {
	// Arrange
	purge := &mockPurgeService{}
	purge.On("PurgeRemovedAttachments", mock.Anything).Return(3, nil).Once()
	cm := NewCronManager(testConfig(), getLogger(), nil, purge)

	// Act
	cm.purgeRemovedAttachments()

	// Assert
	purge.AssertExpectations(t)
}

func TestCronManager_StartLocalAndStop(t *testing.T) {
	// Arrange
	cm := NewCronManager(testConfig(), getLogger(), nil, &mockPurgeService{})

	// Act
	require.NoError(t, cm.Start("pod", "default"))
	cm.Stop()
	cm.Stop()

	// Assert
	select {
	case <-cm.stopCh:
		// Channel is closed as expected
	default:
		t.Error("Stop channel was not closed")
	}
}

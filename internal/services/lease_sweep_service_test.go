package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdash/portfolio-service/internal/models"
)

func TestRunSweepPublishesOncePerExpiringTenant(t *testing.T) {
	s := seededStore()
	router := NewNotificationRouter(s, nil)
	sweep := NewLeaseSweepService(s, router, 6)
	sweep.now = func() time.Time { return fixedNow }

	published, err := sweep.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	var warning *models.Notification
	for _, n := range router.VisibleFor(models.RoleAssetManager) {
		if n.ID == LeaseWarningID("t1") {
			n := n
			warning = &n
		}
	}
	require.NotNil(t, warning)
	assert.Equal(t, models.NotificationWarning, warning.Type)
	assert.Equal(t, models.CategoryLease, warning.Category)
	assert.Equal(t, "t1-p0", warning.PropertyID)
	assert.Contains(t, warning.Message, "2025-06-30")
	assert.NotContains(t, noteIDs(router.VisibleFor(models.RoleEmployee)), LeaseWarningID("t1"))

	again, err := sweep.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, again)

	tenants := s.Tenants()
	assert.Equal(t, models.TenantStatusExpiringSoon, tenants[0].Status)
	assert.Equal(t, models.TenantStatusExpired, tenants[2].Status)
}

func TestRunSweepStopsOnCancelledContext(t *testing.T) {
	s := seededStore()
	sweep := NewLeaseSweepService(s, NewNotificationRouter(s, nil), 6)
	sweep.now = func() time.Time { return fixedNow }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	published, err := sweep.RunSweep(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, published)
}

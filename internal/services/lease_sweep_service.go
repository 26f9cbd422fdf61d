package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/store"
	"github.com/propdash/portfolio-service/internal/utils"
)

// LeaseSweepService refreshes tenant statuses and raises a lease warning for
// every tenant that has moved into the Expiring Soon window.
type LeaseSweepService struct {
	store           *store.Store
	router          *NotificationRouter
	thresholdMonths int
	now             func() time.Time
}

func NewLeaseSweepService(s *store.Store, router *NotificationRouter, thresholdMonths int) *LeaseSweepService {
	return &LeaseSweepService{
		store:           s,
		router:          router,
		thresholdMonths: thresholdMonths,
		now:             time.Now,
	}
}

// LeaseWarningID is the notification id raised for a tenant, so repeated
// sweeps never duplicate a warning.
func LeaseWarningID(tenantID string) string {
	return "lease-expiring-" + tenantID
}

// RunSweep returns the number of new warnings published.
func (s *LeaseSweepService) RunSweep(ctx context.Context) (int, error) {
	now := s.now()
	tenants := RefreshTenantStatuses(s.store.Tenants(), now, s.thresholdMonths)
	s.store.ReplaceTenants(tenants)

	published := 0
	for _, t := range tenants {
		if t.Status != models.TenantStatusExpiringSoon {
			continue
		}
		if err := ctx.Err(); err != nil {
			return published, err
		}
		n := leaseWarning(t, now)
		err := s.router.Publish(ctx, n)
		if errors.Is(err, utils.ErrDuplicateNotification) {
			continue
		}
		if err != nil {
			return published, fmt.Errorf("publish lease warning for tenant %s: %w", t.ID, err)
		}
		published++
	}

	utils.Logger.WithField("published", published).Info("Lease sweep complete")
	return published, nil
}

func leaseWarning(t models.Tenant, now time.Time) models.Notification {
	expiry, _ := t.EarliestExpiry()
	n := models.Notification{
		ID:        LeaseWarningID(t.ID),
		Type:      models.NotificationWarning,
		Category:  models.CategoryLease,
		Title:     "Lease Expiring Soon",
		Message:   fmt.Sprintf("%s lease expires on %s (%d business days)", t.Name, expiry.String(), BusinessDaysUntilExpiry(t, now)),
		Timestamp: now.UTC(),
		ActionURL: "/tenants",
		Roles:     []models.Role{models.RoleExecutive, models.RoleAssetManager},
	}
	for _, l := range t.Properties {
		if l.LeaseExpiry.Equal(expiry.Time) {
			n.PropertyID = l.PropertyID
			n.PropertyName = l.PropertyName
			break
		}
	}
	return n
}

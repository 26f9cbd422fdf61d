package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdash/portfolio-service/internal/models"
)

func tenantIDs(tenants []models.Tenant) []string {
	out := make([]string, len(tenants))
	for i, t := range tenants {
		out[i] = t.ID
	}
	return out
}

func TestDeriveTenantStatus(t *testing.T) {
	cases := []struct {
		name     string
		expiries []models.Date
		want     models.TenantStatus
	}{
		{"no leases", nil, models.TenantStatusActive},
		{"lapsed", []models.Date{models.NewDate(2025, time.March, 1)}, models.TenantStatusExpired},
		{"within window", []models.Date{models.NewDate(2025, time.August, 1)}, models.TenantStatusExpiringSoon},
		{"outside window", []models.Date{models.NewDate(2025, time.October, 1)}, models.TenantStatusActive},
		{"earliest lease wins", []models.Date{models.NewDate(2030, time.January, 1), models.NewDate(2025, time.May, 1)}, models.TenantStatusExpiringSoon},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveTenantStatus(tenant("t", "T", "X", tc.expiries...), fixedNow, 6)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDeriveTenantStatusThresholdIsConfigurable(t *testing.T) {
	tn := tenant("t", "T", "X", models.NewDate(2025, time.August, 1))

	assert.Equal(t, models.TenantStatusActive, DeriveTenantStatus(tn, fixedNow, 3))
	assert.Equal(t, models.TenantStatusExpiringSoon, DeriveTenantStatus(tn, fixedNow, 6))
}

func TestRefreshTenantStatusesCopies(t *testing.T) {
	in := seededStore().Tenants()

	out := RefreshTenantStatuses(in, fixedNow, 6)

	require.Len(t, out, 3)
	assert.Equal(t, models.TenantStatusExpiringSoon, out[0].Status)
	assert.Equal(t, models.TenantStatusActive, out[1].Status)
	assert.Equal(t, models.TenantStatusExpired, out[2].Status)
	assert.Empty(t, in[0].Status)
}

func TestFilterTenants(t *testing.T) {
	tenants := RefreshTenantStatuses(seededStore().Tenants(), fixedNow, 6)

	assert.Equal(t, []string{"t2"}, tenantIDs(FilterTenants(tenants, TenantFilter{Search: "BOLT"})))
	assert.Equal(t, []string{"t3"}, tenantIDs(FilterTenants(tenants, TenantFilter{Search: "mining"})))
	assert.Equal(t, []string{"t1"}, tenantIDs(FilterTenants(tenants, TenantFilter{Search: "contact t1"})))
	assert.Equal(t, []string{"t1"}, tenantIDs(FilterTenants(tenants, TenantFilter{Search: "acme consulting building"})))
	assert.Equal(t, []string{"t3"}, tenantIDs(FilterTenants(tenants, TenantFilter{Status: "Expired"})))
	assert.Equal(t, []string{"t2"}, tenantIDs(FilterTenants(tenants, TenantFilter{Industry: "Retail", Status: "all"})))
	assert.Len(t, FilterTenants(tenants, TenantFilter{Status: "all", Industry: "all"}), 3)
}

func TestSortTenants(t *testing.T) {
	tenants := seededStore().Tenants()
	tenants[1].Properties = append(tenants[1].Properties, models.Lease{TotalArea: 50, MonthlyRental: 5000})
	tenants[1].RecomputeTotals()

	assert.Equal(t, []string{"t1", "t2", "t3"}, tenantIDs(SortTenants(tenants, TenantSortName, fixedNow)))
	assert.Equal(t, []string{"t2", "t1", "t3"}, tenantIDs(SortTenants(tenants, TenantSortRental, fixedNow)))
	assert.Equal(t, []string{"t2", "t1", "t3"}, tenantIDs(SortTenants(tenants, TenantSortArea, fixedNow)))
	assert.Equal(t, []string{"t3", "t1", "t2"}, tenantIDs(SortTenants(tenants, TenantSortExpiry, fixedNow)))
	assert.Equal(t, []string{"t1", "t2", "t3"}, tenantIDs(SortTenants(tenants, "unknown", fixedNow)))
}

func TestListIndustries(t *testing.T) {
	tenants := seededStore().Tenants()
	tenants = append(tenants, tenant("t4", "Delta", "Retail"))

	assert.Equal(t, []string{"Mining", "Professional Services", "Retail"}, ListIndustries(tenants))
}

func TestBusinessDaysUntilExpiry(t *testing.T) {
	// Friday 2025-03-14 to Monday 2025-03-24: 21 March is Human Rights Day.
	now := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	tn := tenant("t", "T", "X", models.NewDate(2025, time.March, 24))

	assert.Equal(t, 5, BusinessDaysUntilExpiry(tn, now))
	assert.True(t, IsZAPublicHoliday(time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, 0, BusinessDaysUntilExpiry(tenant("t", "T", "X"), now))
	assert.Equal(t, 0, BusinessDaysUntilExpiry(tenant("t", "T", "X", models.NewDate(2025, time.March, 1)), now))
}

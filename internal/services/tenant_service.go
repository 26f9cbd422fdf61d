package services

import (
	"sort"
	"strings"
	"time"

	"github.com/propdash/portfolio-service/internal/models"
)

type TenantFilter struct {
	Search   string
	Status   string
	Industry string
}

type TenantSortKey string

const (
	TenantSortName   TenantSortKey = "name"
	TenantSortRental TenantSortKey = "rental"
	TenantSortArea   TenantSortKey = "area"
	TenantSortExpiry TenantSortKey = "expiry"
)

// DeriveTenantStatus classifies a tenant by its earliest lease expiry:
// already passed is Expired, within thresholdMonths of now is Expiring Soon,
// anything later (or no leases at all) is Active.
func DeriveTenantStatus(t models.Tenant, now time.Time, thresholdMonths int) models.TenantStatus {
	expiry, ok := t.EarliestExpiry()
	if !ok {
		return models.TenantStatusActive
	}
	if expiry.Before(now) {
		return models.TenantStatusExpired
	}
	if expiry.Before(now.AddDate(0, thresholdMonths, 0)) {
		return models.TenantStatusExpiringSoon
	}
	return models.TenantStatusActive
}

// RefreshTenantStatuses returns copies of tenants with derived statuses.
func RefreshTenantStatuses(tenants []models.Tenant, now time.Time, thresholdMonths int) []models.Tenant {
	out := make([]models.Tenant, len(tenants))
	for i, t := range tenants {
		c := t.Clone()
		c.Status = DeriveTenantStatus(c, now, thresholdMonths)
		out[i] = c
	}
	return out
}

func FilterTenants(tenants []models.Tenant, f TenantFilter) []models.Tenant {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if !matchesCategory(f.Status, string(t.Status)) || !matchesCategory(f.Industry, t.Industry) {
			continue
		}
		if search != "" && !tenantMatchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func tenantMatchesSearch(t models.Tenant, search string) bool {
	if strings.Contains(strings.ToLower(t.Name), search) ||
		strings.Contains(strings.ToLower(t.Industry), search) ||
		strings.Contains(strings.ToLower(t.ContactPerson), search) {
		return true
	}
	for _, l := range t.Properties {
		if strings.Contains(strings.ToLower(l.PropertyName), search) {
			return true
		}
	}
	return false
}

// SortTenants orders tenants by name ascending, by rental or area
// descending, or by time to earliest expiry ascending. Unknown keys keep
// input order.
func SortTenants(tenants []models.Tenant, key TenantSortKey, now time.Time) []models.Tenant {
	out := append([]models.Tenant(nil), tenants...)

	var less func(a, b *models.Tenant) bool
	switch key {
	case TenantSortName:
		c := newCollator()
		less = func(a, b *models.Tenant) bool { return c.CompareString(a.Name, b.Name) < 0 }
	case TenantSortRental:
		less = func(a, b *models.Tenant) bool { return a.TotalMonthlyRental > b.TotalMonthlyRental }
	case TenantSortArea:
		less = func(a, b *models.Tenant) bool { return a.TotalArea > b.TotalArea }
	case TenantSortExpiry:
		less = func(a, b *models.Tenant) bool { return daysUntilExpiry(*a, now) < daysUntilExpiry(*b, now) }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// daysUntilExpiry is negative for lapsed leases. Tenants without leases
// sort last.
func daysUntilExpiry(t models.Tenant, now time.Time) int {
	expiry, ok := t.EarliestExpiry()
	if !ok {
		return int(^uint(0) >> 1)
	}
	return int(expiry.Sub(now).Hours() / 24)
}

// ListIndustries returns the distinct industries, sorted.
func ListIndustries(tenants []models.Tenant) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, t := range tenants {
		if _, ok := seen[t.Industry]; ok || t.Industry == "" {
			continue
		}
		seen[t.Industry] = struct{}{}
		out = append(out, t.Industry)
	}
	sort.Strings(out)
	return out
}

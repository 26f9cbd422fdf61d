package controllers

import (
	"net/http"
	"time"

	"github.com/propdash/portfolio-service/internal/dtos"
	"github.com/propdash/portfolio-service/internal/services"
	"github.com/propdash/portfolio-service/internal/store"
	"github.com/propdash/portfolio-service/internal/utils"
)

type TenantController struct {
	store           *store.Store
	thresholdMonths int
	now             func() time.Time
}

func NewTenantController(s *store.Store, thresholdMonths int) *TenantController {
	return &TenantController{store: s, thresholdMonths: thresholdMonths, now: time.Now}
}

// GET /api/v1/tenants?q=&status=&industry=&sort=
func (c *TenantController) ListTenantsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := c.now()

	all := services.RefreshTenantStatuses(c.store.Tenants(), now, c.thresholdMonths)
	filtered := services.FilterTenants(all, services.TenantFilter{
		Search:   q.Get("q"),
		Status:   q.Get("status"),
		Industry: q.Get("industry"),
	})

	sortKey := services.TenantSortKey(q.Get("sort"))
	switch sortKey {
	case "", services.TenantSortName, services.TenantSortRental, services.TenantSortArea, services.TenantSortExpiry:
	default:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "unknown sort key "+string(sortKey), nil)
		return
	}
	sorted := services.SortTenants(filtered, sortKey, now)

	rows := make([]dtos.TenantRow, 0, len(sorted))
	for _, t := range sorted {
		rows = append(rows, dtos.TenantRow{
			Tenant:               t,
			BusinessDaysToExpiry: services.BusinessDaysUntilExpiry(t, now),
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.TenantListResponse{
		Tenants:    rows,
		Industries: services.ListIndustries(all),
		Total:      len(rows),
	})
}

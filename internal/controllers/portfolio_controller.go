package controllers

import (
	"net/http"
	"time"

	"github.com/propdash/portfolio-service/internal/dtos"
	"github.com/propdash/portfolio-service/internal/services"
	"github.com/propdash/portfolio-service/internal/store"
	"github.com/propdash/portfolio-service/internal/utils"
)

type PortfolioController struct {
	store           *store.Store
	thresholdMonths int
	now             func() time.Time
}

func NewPortfolioController(s *store.Store, thresholdMonths int) *PortfolioController {
	return &PortfolioController{store: s, thresholdMonths: thresholdMonths, now: time.Now}
}

// GET /api/v1/portfolio/metrics
func (c *PortfolioController) GetMetricsHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}

	props := c.store.Properties()
	tenants := services.RefreshTenantStatuses(c.store.Tenants(), c.now(), c.thresholdMonths)

	resp := dtos.PortfolioMetricsResponse{
		Metrics:  services.ComputePortfolioMetrics(props),
		ByType:   services.ComputeBreakdownByType(props),
		ByRegion: services.ComputeBreakdownByRegion(props),
		Tenants:  services.ComputeTenantSummary(tenants),
	}
	if role.HasFinancialAccess() {
		summary := services.ComputeTransactionSummary(c.store.Transactions())
		resp.Transactions = &summary
	}
	resp.Notice = services.FinancialNotice(role)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

package controllers

import (
	"net/http"

	"github.com/propdash/portfolio-service/internal/dtos"
	"github.com/propdash/portfolio-service/internal/geocoding"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/store"
	"github.com/propdash/portfolio-service/internal/utils"
)

type GeocodeController struct {
	store    *store.Store
	runner   *geocoding.Runner
	provider geocoding.ProviderName
}

// NewGeocodeController accepts a nil runner; the endpoint then answers 503.
func NewGeocodeController(s *store.Store, runner *geocoding.Runner, provider geocoding.ProviderName) *GeocodeController {
	return &GeocodeController{store: s, runner: runner, provider: provider}
}

// POST /api/v1/geocode/enrich
//
// Runs synchronously. A client disconnect cancels the batch; records
// finished by then are still written to the store.
func (c *GeocodeController) EnrichHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}
	if role != models.RoleExecutive && role != models.RoleAssetManager {
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "Geocoding is restricted to executives and asset managers", nil)
		return
	}
	if c.runner == nil {
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "No geocoding provider configured", nil)
		return
	}

	res, err := geocoding.EnrichStore(r.Context(), c.store, c.runner, nil)
	if err != nil {
		utils.Logger.WithError(err).WithField("run_id", res.RunID).Warn("Geocoding batch ended early")
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.GeocodeEnrichResponse{
		RunID:        res.RunID,
		Provider:     string(c.provider),
		Total:        len(res.Records),
		SuccessCount: res.SuccessCount,
		FailedCount:  res.FailedCount,
	})
}

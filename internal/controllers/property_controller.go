package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/dtos"
	"github.com/propdash/portfolio-service/internal/services"
	"github.com/propdash/portfolio-service/internal/store"
	"github.com/propdash/portfolio-service/internal/utils"
)

const defaultNearbyRadiusKm = 10.0

type PropertyController struct {
	store *store.Store
}

func NewPropertyController(s *store.Store) *PropertyController {
	return &PropertyController{store: s}
}

// GET /api/v1/properties?q=&type=&status=&region=&sort=&dir=
func (c *PropertyController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := services.PropertyFilter{
		Query:  q.Get("q"),
		Type:   q.Get("type"),
		Status: q.Get("status"),
		Region: q.Get("region"),
	}
	props := services.FilterProperties(c.store.Properties(), filter)

	if rawSort := q.Get("sort"); rawSort != "" {
		field, err := services.ParseSortField(rawSort)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)
			return
		}
		dir := services.SortAsc
		if rawDir := q.Get("dir"); rawDir != "" {
			dir, err = services.ParseSortDirection(rawDir)
			if err != nil {
				utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)
				return
			}
		}
		props = services.SortProperties(props, field, dir)
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyListResponse{
		Properties: services.NewPropertyViews(props, role),
		Total:      len(props),
		Notice:     services.FinancialNotice(role),
	})
}

// GET /api/v1/properties/{id}
func (c *PropertyController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	p, found := c.store.PropertyByID(id)
	if !found {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Property not found", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyResponse{
		PropertyView: services.NewPropertyView(*p, role),
		Notice:       services.FinancialNotice(role),
	})
}

// GET /api/v1/properties/nearby?lat=&lng=&radius_km=
func (c *PropertyController) NearbyPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "lat and lng must be valid coordinates", nil)
		return
	}

	radius := defaultNearbyRadiusKm
	if raw := q.Get("radius_km"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "radius_km must be a positive number", nil)
			return
		}
		radius = v
	}

	nearby := services.NearbyProperties(c.store.Properties(), lat, lng, radius)
	rows := make([]dtos.NearbyPropertyRow, 0, len(nearby))
	for _, n := range nearby {
		rows = append(rows, dtos.NearbyPropertyRow{
			Property:   services.NewPropertyView(n.Property, role),
			DistanceKm: n.DistanceKm,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NearbyPropertiesResponse{
		Properties: rows,
		RadiusKm:   radius,
		Notice:     services.FinancialNotice(role),
	})
}

// POST /api/v1/properties/selection
func (c *PropertyController) SelectionHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.StructCtx(r.Context(), req); err != nil {
		respondValidation(w, err)
		return
	}

	var selected []string
	switch req.Action {
	case dtos.SelectionActionToggle:
		selected = services.ToggleSelection(req.Selected, req.ID, constants.MaxComparisonSelection)
	case dtos.SelectionActionAll:
		selected = services.SelectAllOrNone(req.Selected, req.SortedIDs, constants.MaxComparisonSelection)
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.SelectionResponse{
		Selected: selected,
		Limit:    constants.MaxComparisonSelection,
		AtLimit:  len(selected) >= constants.MaxComparisonSelection,
	})
}

// POST /api/v1/properties/compare
func (c *PropertyController) CompareHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}

	var req dtos.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.StructCtx(r.Context(), req); err != nil {
		respondValidation(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, services.CompareProperties(c.store, req.IDs, role))
}

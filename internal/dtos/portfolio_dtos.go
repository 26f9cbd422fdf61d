package dtos

import (
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/services"
)

type SessionResponse struct {
	Role               models.Role   `json:"role"`
	Label              string        `json:"label"`
	Views              []models.View `json:"views"`
	HasFinancialAccess bool          `json:"hasFinancialAccess"`
}

// PortfolioMetricsResponse is the dashboard summary. Transactions is only
// present for roles with financial access.
type PortfolioMetricsResponse struct {
	Metrics      services.PortfolioMetrics    `json:"metrics"`
	ByType       []services.TypeBreakdown     `json:"byType"`
	ByRegion     []services.RegionBreakdown   `json:"byRegion"`
	Tenants      services.TenantSummary       `json:"tenants"`
	Transactions *services.TransactionSummary `json:"transactions,omitempty"`
	Notice       string                       `json:"notice,omitempty"`
}

// Notice is set on property responses whose money figures were withheld.
type PropertyResponse struct {
	services.PropertyView
	Notice string `json:"notice,omitempty"`
}

type PropertyListResponse struct {
	Properties []services.PropertyView `json:"properties"`
	Total      int                     `json:"total"`
	Notice     string                  `json:"notice,omitempty"`
}

type NearbyPropertyRow struct {
	Property   services.PropertyView `json:"property"`
	DistanceKm float64               `json:"distanceKm"`
}

type NearbyPropertiesResponse struct {
	Properties []NearbyPropertyRow `json:"properties"`
	RadiusKm   float64             `json:"radiusKm"`
	Notice     string              `json:"notice,omitempty"`
}

const (
	SelectionActionToggle = "toggle"
	SelectionActionAll    = "all"
)

// SelectionRequest carries the client's current selection. For "all",
// SortedIDs is the visible list in display order.
type SelectionRequest struct {
	Action    string   `json:"action" validate:"required,oneof=toggle all"`
	Selected  []string `json:"selected" validate:"max=4"`
	ID        string   `json:"id" validate:"required_if=Action toggle"`
	SortedIDs []string `json:"sortedIds"`
}

type SelectionResponse struct {
	Selected []string `json:"selected"`
	Limit    int      `json:"limit"`
	AtLimit  bool     `json:"atLimit"`
}

type CompareRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// TenantRow adds the working days left on the earliest lease.
type TenantRow struct {
	models.Tenant
	BusinessDaysToExpiry int `json:"businessDaysToExpiry"`
}

type TenantListResponse struct {
	Tenants    []TenantRow `json:"tenants"`
	Industries []string    `json:"industries"`
	Total      int         `json:"total"`
}

type GeocodeEnrichResponse struct {
	RunID        string `json:"runId"`
	Provider     string `json:"provider"`
	Total        int    `json:"total"`
	SuccessCount int    `json:"successCount"`
	FailedCount  int    `json:"failedCount"`
}

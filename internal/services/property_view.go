package services

import (
	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/models"
)

// PropertyMetricsView keeps size and occupancy for everyone. The money
// figures are nil for roles without financial access.
type PropertyMetricsView struct {
	Size          float64  `json:"size"`
	OccupancyRate float64  `json:"occupancyRate"`
	Value         *float64 `json:"value,omitempty"`
	AnnualRevenue *float64 `json:"annualRevenue,omitempty"`
	ROI           *float64 `json:"roi,omitempty"`
	YieldRate     *float64 `json:"yieldRate,omitempty"`
}

// PropertyView is a property shaped for the viewer's role.
type PropertyView struct {
	ID           string                `json:"id"`
	PropertyCode string                `json:"property_code,omitempty"`
	Name         string                `json:"name"`
	Type         models.PropertyType   `json:"type"`
	Status       models.PropertyStatus `json:"status"`
	Location     models.Location       `json:"location"`
	Metrics      PropertyMetricsView   `json:"metrics"`
	Financial    *models.Financial     `json:"financial,omitempty"`
	Tenant       *models.CurrentTenant `json:"tenant,omitempty"`
}

func NewPropertyView(p models.Property, role models.Role) PropertyView {
	p = p.Clone()
	v := PropertyView{
		ID:           p.ID,
		PropertyCode: p.PropertyCode,
		Name:         p.Name,
		Type:         p.Type,
		Status:       p.Status,
		Location:     p.Location,
		Metrics: PropertyMetricsView{
			Size:          p.Metrics.Size,
			OccupancyRate: p.Metrics.OccupancyRate,
		},
		Tenant: p.Tenant,
	}
	if role.HasFinancialAccess() {
		m := p.Metrics
		v.Metrics.Value = &m.Value
		v.Metrics.AnnualRevenue = &m.AnnualRevenue
		v.Metrics.ROI = &m.ROI
		v.Metrics.YieldRate = &m.YieldRate
		v.Financial = &p.Financial
	}
	return v
}

func NewPropertyViews(props []models.Property, role models.Role) []PropertyView {
	out := make([]PropertyView, 0, len(props))
	for _, p := range props {
		out = append(out, NewPropertyView(p, role))
	}
	return out
}

// FinancialNotice is the refusal shown alongside role-shaped data, or ""
// when the role sees everything.
func FinancialNotice(role models.Role) string {
	if role.HasFinancialAccess() {
		return ""
	}
	return constants.FinancialAccessRefusal
}

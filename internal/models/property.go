package models

type PropertyType string

const (
	PropertyTypeOffice     PropertyType = "Office"
	PropertyTypeIndustrial PropertyType = "Industrial"
	PropertyTypeRetail     PropertyType = "Retail"
)

type PropertyStatus string

const (
	PropertyStatusActive           PropertyStatus = "Active"
	PropertyStatusUnderDevelopment PropertyStatus = "Under Development"
	PropertyStatusDisposed         PropertyStatus = "Disposed"
)

// NodeNotApplicable is the placeholder node label for properties outside a node.
const NodeNotApplicable = "n/a"

// Property is a real-estate asset in the portfolio.
type Property struct {
	ID           string         `json:"id" validate:"required"`
	PropertyCode string         `json:"property_code,omitempty"`
	Name         string         `json:"name" validate:"required"`
	Type         PropertyType   `json:"type"`
	Status       PropertyStatus `json:"status"`
	Location     Location       `json:"location"`
	Metrics      Metrics        `json:"metrics"`
	Financial    Financial      `json:"financial"`
	Tenant       *CurrentTenant `json:"tenant,omitempty"`
}

// Location stays nil-coordinate until the property has been geocoded.
type Location struct {
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Address  string   `json:"address" validate:"required"`
	Node     string   `json:"node"`
	Region   string   `json:"region" validate:"required"`
	TimeZone string   `json:"timeZone,omitempty"`
}

// HasCoordinates reports whether both lat and lng are known.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

type Metrics struct {
	Value         float64 `json:"value"`
	Size          float64 `json:"size"`
	OccupancyRate float64 `json:"occupancyRate"`
	AnnualRevenue float64 `json:"annualRevenue"`
	ROI           float64 `json:"roi"`
	YieldRate     float64 `json:"yieldRate"`
}

type Financial struct {
	AcquisitionDate  *Date    `json:"acquisitionDate,omitempty"`
	AcquisitionPrice *float64 `json:"acquisitionPrice,omitempty"`
	CurrentValue     float64  `json:"currentValue"`
	DisposalDate     *Date    `json:"disposalDate,omitempty"`
	DisposalPrice    *float64 `json:"disposalPrice,omitempty"`
	ProfitLoss       *float64 `json:"profitLoss,omitempty"`
}

// CurrentTenant is the headline occupant shown against a property.
type CurrentTenant struct {
	Name        string `json:"name"`
	LeaseExpiry Date   `json:"leaseExpiry"`
}

// Clone returns a deep copy so callers never share pointers with the store.
func (p Property) Clone() Property {
	out := p
	out.Location.Lat = clonePtr(p.Location.Lat)
	out.Location.Lng = clonePtr(p.Location.Lng)
	out.Financial.AcquisitionDate = clonePtr(p.Financial.AcquisitionDate)
	out.Financial.AcquisitionPrice = clonePtr(p.Financial.AcquisitionPrice)
	out.Financial.DisposalDate = clonePtr(p.Financial.DisposalDate)
	out.Financial.DisposalPrice = clonePtr(p.Financial.DisposalPrice)
	out.Financial.ProfitLoss = clonePtr(p.Financial.ProfitLoss)
	if p.Tenant != nil {
		t := *p.Tenant
		out.Tenant = &t
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

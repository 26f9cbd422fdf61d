package models

type TenantStatus string

const (
	TenantStatusActive       TenantStatus = "Active"
	TenantStatusExpiringSoon TenantStatus = "Expiring Soon"
	TenantStatusExpired      TenantStatus = "Expired"
)

type CreditRating string

const (
	CreditRatingExcellent CreditRating = "Excellent"
	CreditRatingGood      CreditRating = "Good"
	CreditRatingFair      CreditRating = "Fair"
	CreditRatingPoor      CreditRating = "Poor"
)

type PaymentHistory string

const (
	PaymentHistoryOnTime           PaymentHistory = "On Time"
	PaymentHistoryOccasionalDelays PaymentHistory = "Occasional Delays"
	PaymentHistoryFrequentDelays   PaymentHistory = "Frequent Delays"
)

// Tenant is an occupant that may lease space across several properties.
// TotalArea and TotalMonthlyRental always equal the sums over Properties;
// use RecomputeTotals after changing the lease list.
type Tenant struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Industry           string         `json:"industry"`
	ContactPerson      string         `json:"contactPerson"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	Properties         []Lease        `json:"properties"`
	TotalArea          float64        `json:"totalArea"`
	TotalMonthlyRental float64        `json:"totalMonthlyRental"`
	Status             TenantStatus   `json:"status"`
	CreditRating       CreditRating   `json:"creditRating"`
	PaymentHistory     PaymentHistory `json:"paymentHistory"`
}

// Lease is one tenancy of a tenant in a property.
type Lease struct {
	PropertyID    string       `json:"propertyId"`
	PropertyName  string       `json:"propertyName"`
	PropertyType  PropertyType `json:"propertyType"`
	TotalArea     float64      `json:"totalArea"`
	LeaseStart    Date         `json:"leaseStart"`
	LeaseExpiry   Date         `json:"leaseExpiry"`
	MonthlyRental float64      `json:"monthlyRental"`
}

func (t *Tenant) RecomputeTotals() {
	var area, rental float64
	for _, l := range t.Properties {
		area += l.TotalArea
		rental += l.MonthlyRental
	}
	t.TotalArea = area
	t.TotalMonthlyRental = rental
}

// EarliestExpiry returns the soonest lease expiry, or false when the tenant
// holds no leases.
func (t Tenant) EarliestExpiry() (Date, bool) {
	var earliest Date
	found := false
	for _, l := range t.Properties {
		if l.LeaseExpiry.IsZero() {
			continue
		}
		if !found || l.LeaseExpiry.Before(earliest.Time) {
			earliest = l.LeaseExpiry
			found = true
		}
	}
	return earliest, found
}

func (t Tenant) Clone() Tenant {
	out := t
	out.Properties = append([]Lease(nil), t.Properties...)
	return out
}

package constants

import (
	"time"
)

// Selection / comparison
const (
	MaxComparisonSelection = 4
)

// Tenants
const (
	// A tenant whose earliest lease ends within this many months is "Expiring Soon".
	DefaultLeaseExpiringSoonMonths = 6
	LeaseSweepSchedule             = "10 0 * * *"
)

// Geocoding
const (
	GeocodeRequestDelay   = 200 * time.Millisecond
	GeocodeRequestTimeout = 10 * time.Second
	GeocodeCountrySuffix  = "South Africa"
	GeocodeCountryCode    = "ZA"
	GeocodeSheetName      = "Geocoded"
)

// Provider endpoints
const (
	GoogleGeocodeBaseURL        = "https://maps.googleapis.com"
	MapboxGeocodeBaseURL        = "https://api.mapbox.com"
	PositionstackGeocodeBaseURL = "http://api.positionstack.com"
)

// Feed transform (demo data)
const (
	FeedBaseValue              = 50_000_000.0
	FeedAcquisitionPriceFactor = 0.8
	FeedNodeFallback           = "n/a"
)

// Value multipliers applied to FeedBaseValue.
var (
	FeedTypeMultipliers = map[string]float64{
		"Office":     1.0,
		"Industrial": 0.6,
		"Retail":     1.2,
	}
	FeedDefaultTypeMultiplier = 1.0

	FeedRegionMultipliers = map[string]float64{
		"Gauteng":       1.0,
		"Western Cape":  0.9,
		"KwaZulu-Natal": 0.7,
		"Eastern Cape":  0.5,
		"Free State":    0.4,
		"Limpopo":       0.3,
		"Mpumalanga":    0.4,
		"Northern Cape": 0.3,
		"North West":    0.4,
	}
	FeedDefaultRegionMultiplier = 0.5
)

// SizeRange is an inclusive-exclusive range of lettable area in square metres.
type SizeRange struct {
	Min float64
	Max float64
}

var (
	FeedSizeRanges = map[string]SizeRange{
		"Office":     {Min: 2000, Max: 25000},
		"Industrial": {Min: 5000, Max: 50000},
		"Retail":     {Min: 1000, Max: 15000},
	}
	FeedDefaultSizeRange = SizeRange{Min: 2000, Max: 10000}
)

// Financial access refusal returned by the assistant and the comparison view.
const FinancialAccessRefusal = "I apologize, but financial data access is restricted to Executive and Finance team members. You can view property information, locations, and occupancy data instead."

// CORS
const (
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"
)

// Lease sweep
const (
	LeaseSweepJobTimeout = 2 * time.Minute
)

// Feature flags
const (
	LDFlagEmailCriticalAlerts = "email_critical_alerts"
	LDFlagSMSCriticalAlerts   = "sms_critical_alerts"
	LDFlagCORSHighSecurity    = "cors_high_security"
	LDFlagSendgridSandboxMode = "sendgrid_sandbox_mode"
	LDFlagSeedDemoData        = "seed_demo_data"
)

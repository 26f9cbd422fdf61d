package services

import (
	"math"
	"math/rand"
	"time"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/models"
)

// FeedProperty is one record of the external property listing feed. It has
// no financial data; TransformFeed synthesizes it.
type FeedProperty struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Location struct {
		Lat     *float64 `json:"lat"`
		Lng     *float64 `json:"lng"`
		Address string   `json:"address"`
		Node    *string  `json:"node"`
		Region  string   `json:"region"`
	} `json:"location"`
	PropertyDetails struct {
		Sector       string   `json:"sector"`
		City         string   `json:"city"`
		Description  string   `json:"description"`
		ParkingRatio *float64 `json:"parking_ratio"`
	} `json:"property_details"`
	LeasingConsultant struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	} `json:"leasing_consultant"`
	PropertyCode string `json:"property_code"`
}

var (
	feedAcquisitionStart = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	feedAcquisitionEnd   = time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// TransformFeed converts feed records into properties with synthetic
// metrics. Output is deterministic for a given rng seed and now.
func TransformFeed(items []FeedProperty, rng *rand.Rand, now time.Time) []models.Property {
	out := make([]models.Property, 0, len(items))
	for _, item := range items {
		value := feedBaseValue(rng, item.Type, item.Location.Region)
		size := feedSize(rng, item.Type)
		occupancy := math.Round(75 + rng.Float64()*25)
		revenue := math.Round(value * (0.08 + rng.Float64()*0.04) * (occupancy / 100))
		roi := math.Round((8+rng.Float64()*8)*100) / 100
		yield := 0.0
		if value > 0 {
			yield = math.Round(revenue/value*10000) / 100
		}

		node := constants.FeedNodeFallback
		if item.Location.Node != nil && *item.Location.Node != "" {
			node = *item.Location.Node
		}
		tenantName := item.LeasingConsultant.Name
		if tenantName == "" {
			tenantName = constants.FeedNodeFallback
		}

		acquired := feedAcquisitionDate(rng)
		acquisitionPrice := math.Round(value * constants.FeedAcquisitionPriceFactor)

		out = append(out, models.Property{
			ID:           item.ID,
			PropertyCode: item.PropertyCode,
			Name:         item.Name,
			Type:         models.PropertyType(item.Type),
			Status:       models.PropertyStatus(item.Status),
			Location: models.Location{
				Lat:     cloneFloat(item.Location.Lat),
				Lng:     cloneFloat(item.Location.Lng),
				Address: item.Location.Address,
				Node:    node,
				Region:  item.Location.Region,
			},
			Metrics: models.Metrics{
				Value:         value,
				Size:          size,
				OccupancyRate: occupancy,
				AnnualRevenue: revenue,
				ROI:           roi,
				YieldRate:     yield,
			},
			Financial: models.Financial{
				AcquisitionDate:  &acquired,
				AcquisitionPrice: &acquisitionPrice,
				CurrentValue:     value,
			},
			Tenant: &models.CurrentTenant{
				Name:        tenantName,
				LeaseExpiry: feedLeaseExpiry(rng, now),
			},
		})
	}
	return out
}

func feedBaseValue(rng *rand.Rand, propertyType, region string) float64 {
	typeMult, ok := constants.FeedTypeMultipliers[propertyType]
	if !ok {
		typeMult = constants.FeedDefaultTypeMultiplier
	}
	regionMult, ok := constants.FeedRegionMultipliers[region]
	if !ok {
		regionMult = constants.FeedDefaultRegionMultiplier
	}
	return math.Round(constants.FeedBaseValue * typeMult * regionMult * (0.8 + rng.Float64()*0.4))
}

func feedSize(rng *rand.Rand, propertyType string) float64 {
	r, ok := constants.FeedSizeRanges[propertyType]
	if !ok {
		r = constants.FeedDefaultSizeRange
	}
	return math.Round(r.Min + rng.Float64()*(r.Max-r.Min))
}

func feedAcquisitionDate(rng *rand.Rand) models.Date {
	span := feedAcquisitionEnd.Sub(feedAcquisitionStart)
	t := feedAcquisitionStart.Add(time.Duration(rng.Float64() * float64(span)))
	return models.NewDate(t.Year(), t.Month(), t.Day())
}

func feedLeaseExpiry(rng *rand.Rand, now time.Time) models.Date {
	years := 2 + rng.Float64()*8
	t := now.UTC().Add(time.Duration(years * 365 * 24 * float64(time.Hour)))
	return models.NewDate(t.Year(), t.Month(), t.Day())
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

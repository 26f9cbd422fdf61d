package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/umahmood/haversine"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/propdash/portfolio-service/internal/models"
)

// FilterAll is the categorical filter value meaning "no constraint".
const FilterAll = "all"

type PropertyFilter struct {
	Query  string
	Type   string
	Status string
	Region string
}

type SortField string

const (
	SortByName      SortField = "name"
	SortByType      SortField = "type"
	SortByValue     SortField = "value"
	SortByOccupancy SortField = "occupancy"
	SortByROI       SortField = "roi"
	SortByRevenue   SortField = "revenue"
	SortByRegion    SortField = "region"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// propertyComparators maps every sort field to a three-way comparison.
// The collator is passed in because it is not safe for concurrent use.
var propertyComparators = map[SortField]func(c *collate.Collator, a, b *models.Property) int{
	SortByName: func(c *collate.Collator, a, b *models.Property) int {
		return c.CompareString(a.Name, b.Name)
	},
	SortByType: func(c *collate.Collator, a, b *models.Property) int {
		return c.CompareString(string(a.Type), string(b.Type))
	},
	SortByRegion: func(c *collate.Collator, a, b *models.Property) int {
		return c.CompareString(a.Location.Region, b.Location.Region)
	},
	SortByValue: func(_ *collate.Collator, a, b *models.Property) int {
		return compareFloat(a.Metrics.Value, b.Metrics.Value)
	},
	SortByOccupancy: func(_ *collate.Collator, a, b *models.Property) int {
		return compareFloat(a.Metrics.OccupancyRate, b.Metrics.OccupancyRate)
	},
	SortByROI: func(_ *collate.Collator, a, b *models.Property) int {
		return compareFloat(a.Metrics.ROI, b.Metrics.ROI)
	},
	SortByRevenue: func(_ *collate.Collator, a, b *models.Property) int {
		return compareFloat(a.Metrics.AnnualRevenue, b.Metrics.AnnualRevenue)
	},
}

func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := propertyComparators[f]; !ok {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

func newCollator() *collate.Collator {
	return collate.New(language.English)
}

func compareFloat(a, b float64) int {
	switch d := a - b; {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

func matchesCategory(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// FilterProperties applies the categorical filters and the free-text query.
// The result keeps input order; ordering is SortProperties' job.
func FilterProperties(props []models.Property, f PropertyFilter) []models.Property {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if !matchesCategory(f.Type, string(p.Type)) ||
			!matchesCategory(f.Status, string(p.Status)) ||
			!matchesCategory(f.Region, p.Location.Region) {
			continue
		}
		if query != "" && !propertyMatchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func propertyMatchesQuery(p models.Property, query string) bool {
	fields := []string{
		p.Name,
		p.Location.Address,
		p.Location.Node,
		p.Location.Region,
		string(p.Type),
		string(p.Status),
	}
	if p.Tenant != nil {
		fields = append(fields, p.Tenant.Name)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// SortProperties returns a stably sorted copy of props.
func SortProperties(props []models.Property, field SortField, dir SortDirection) []models.Property {
	out := append([]models.Property(nil), props...)
	cmp, ok := propertyComparators[field]
	if !ok {
		return out
	}
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		r := cmp(c, &out[i], &out[j])
		if dir == SortDesc {
			r = -r
		}
		return r < 0
	})
	return out
}

// NearbyProperty is a property with its crow-flies distance from a point.
type NearbyProperty struct {
	Property   models.Property `json:"property"`
	DistanceKm float64         `json:"distanceKm"`
}

// NearbyProperties returns the geocoded properties within radiusKm of
// (lat, lng), nearest first.
func NearbyProperties(props []models.Property, lat, lng, radiusKm float64) []NearbyProperty {
	origin := haversine.Coord{Lat: lat, Lon: lng}
	out := []NearbyProperty{}
	for _, p := range props {
		if !p.Location.HasCoordinates() {
			continue
		}
		_, km := haversine.Distance(origin, haversine.Coord{Lat: *p.Location.Lat, Lon: *p.Location.Lng})
		if km <= radiusKm {
			out = append(out, NearbyProperty{Property: p, DistanceKm: km})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

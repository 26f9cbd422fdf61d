package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdash/portfolio-service/internal/models"
)

func ids(props []models.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestFilterPropertiesQueryIsCaseInsensitiveAcrossFields(t *testing.T) {
	byName := prop("p1", "Sandton City Office Tower", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 1, 1)
	byAddress := prop("p2", "The Marc", models.PropertyTypeRetail, models.PropertyStatusActive, "Gauteng", 1, 1)
	byAddress.Location.Address = "129 Rivonia Road, SANDTON"
	byTenant := prop("p3", "Block C", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 1, 1)
	byTenant.Tenant = &models.CurrentTenant{Name: "Sandton Legal Partners"}
	unrelated := prop("p4", "Cape Quarter", models.PropertyTypeRetail, models.PropertyStatusActive, "Western Cape", 1, 1)

	got := FilterProperties([]models.Property{byName, byAddress, byTenant, unrelated}, PropertyFilter{Query: "  sandton "})

	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(got))
}

func TestFilterPropertiesQueryMatchesNodeTypeAndStatus(t *testing.T) {
	p := prop("p1", "Block A", models.PropertyTypeIndustrial, models.PropertyStatusUnderDevelopment, "Gauteng", 1, 1)
	p.Location.Node = "Midrand Node"
	props := []models.Property{p}

	assert.Len(t, FilterProperties(props, PropertyFilter{Query: "midrand"}), 1)
	assert.Len(t, FilterProperties(props, PropertyFilter{Query: "industrial"}), 1)
	assert.Len(t, FilterProperties(props, PropertyFilter{Query: "under dev"}), 1)
	assert.Empty(t, FilterProperties(props, PropertyFilter{Query: "retail"}))
}

func TestFilterPropertiesCategoricalFilters(t *testing.T) {
	props := seededStore().Properties()

	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(FilterProperties(props, PropertyFilter{Type: "all", Status: "all", Region: "all"})))
	assert.Equal(t, []string{"p3", "p4"}, ids(FilterProperties(props, PropertyFilter{Type: "Industrial"})))
	assert.Equal(t, []string{"p3"}, ids(FilterProperties(props, PropertyFilter{Type: "Industrial", Status: "Active"})))
	assert.Equal(t, []string{"p1", "p2"}, ids(FilterProperties(props, PropertyFilter{Region: "Gauteng"})))
	assert.Equal(t, []string{"p2"}, ids(FilterProperties(props, PropertyFilter{Region: "Gauteng", Query: "rosebank"})))
	assert.Empty(t, FilterProperties(props, PropertyFilter{Region: "Limpopo"}))
}

func TestSortPropertiesByFieldAndDirection(t *testing.T) {
	props := seededStore().Properties()

	assert.Equal(t, []string{"p3", "p4", "p2", "p1"}, ids(SortProperties(props, SortByName, SortAsc)))
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(SortProperties(props, SortByValue, SortDesc)))
	assert.Equal(t, []string{"p4", "p3", "p2", "p1"}, ids(SortProperties(props, SortByOccupancy, SortAsc)))
	assert.Equal(t, []string{"p4", "p3", "p2", "p1"}, ids(SortProperties(props, SortByROI, SortAsc)))
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(SortProperties(props, SortByRevenue, SortDesc)))
}

func TestSortPropertiesIsStable(t *testing.T) {
	props := []models.Property{
		prop("a", "Zeta", models.PropertyTypeRetail, models.PropertyStatusActive, "Gauteng", 3, 1),
		prop("b", "Alpha", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 1, 1),
		prop("c", "Mid", models.PropertyTypeRetail, models.PropertyStatusActive, "Gauteng", 2, 1),
		prop("d", "Beta", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 4, 1),
	}
	byValue := SortProperties(props, SortByValue, SortAsc)
	require.Equal(t, []string{"b", "c", "a", "d"}, ids(byValue))

	byType := SortProperties(byValue, SortByType, SortAsc)
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(byType))

	byRegionDesc := SortProperties(byValue, SortByRegion, SortDesc)
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(byRegionDesc))
}

func TestSortPropertiesUsesLocaleCollation(t *testing.T) {
	props := []models.Property{
		prop("a", "beta", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 1, 1),
		prop("b", "Alpha", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 1, 1),
		prop("c", "Échelon", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 1, 1),
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids(SortProperties(props, SortByName, SortAsc)))
}

func TestSortPropertiesDoesNotMutateInput(t *testing.T) {
	props := seededStore().Properties()
	_ = SortProperties(props, SortByName, SortAsc)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(props))
}

func TestParseSortFieldAndDirection(t *testing.T) {
	f, err := ParseSortField("ROI")
	require.NoError(t, err)
	assert.Equal(t, SortByROI, f)

	_, err = ParseSortField("size")
	assert.Error(t, err)

	d, err := ParseSortDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, SortDesc, d)

	_, err = ParseSortDirection("sideways")
	assert.Error(t, err)
}

func TestNearbyProperties(t *testing.T) {
	props := seededStore().Properties()

	got := NearbyProperties(props, -26.1076, 28.0567, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].Property.ID)
	assert.InDelta(t, 0, got[0].DistanceKm, 0.01)
	assert.Equal(t, "p2", got[1].Property.ID)
	assert.Greater(t, got[1].DistanceKm, 1.0)

	assert.Empty(t, NearbyProperties(props, -33.9249, 18.4241, 10))
}

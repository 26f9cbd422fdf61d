package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/utils"
)

func TestComputePortfolioMetricsActiveOnly(t *testing.T) {
	props := []models.Property{
		prop("a", "A", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 10, 80),
		prop("b", "B", models.PropertyTypeRetail, models.PropertyStatusActive, "Gauteng", 20, 90),
		prop("c", "C", models.PropertyTypeOffice, models.PropertyStatusActive, "Western Cape", 30, 100),
		prop("d", "D", models.PropertyTypeOffice, models.PropertyStatusDisposed, "Western Cape", 999, 50),
		prop("e", "E", models.PropertyTypeOffice, models.PropertyStatusUnderDevelopment, "Western Cape", 999, 0),
	}

	m := ComputePortfolioMetrics(props)

	assert.Equal(t, 3, m.TotalProperties)
	assert.Equal(t, 60.0, m.TotalValue)
	assert.InDelta(t, 90.0, m.AverageOccupancy, 1e-9)
	assert.InDelta(t, 9.0, m.AverageROI, 1e-9)
	assert.Equal(t, 6.0, m.TotalRevenue)
	assert.Equal(t, 3000.0, m.TotalSize)
	assert.True(t, m.HasData)
}

func TestComputePortfolioMetricsNoActiveProperties(t *testing.T) {
	m := ComputePortfolioMetrics([]models.Property{
		prop("d", "D", models.PropertyTypeOffice, models.PropertyStatusDisposed, "Gauteng", 10, 50),
	})

	assert.Equal(t, 0, m.TotalProperties)
	assert.Zero(t, m.AverageOccupancy)
	assert.Zero(t, m.AverageROI)
	assert.False(t, m.HasData)

	assert.False(t, ComputePortfolioMetrics(nil).HasData)
}

func TestBreakdownsKeepFirstSeenOrder(t *testing.T) {
	props := []models.Property{
		prop("a", "A", models.PropertyTypeRetail, models.PropertyStatusActive, "Western Cape", 5, 80),
		prop("b", "B", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 7, 80),
		prop("c", "C", models.PropertyTypeRetail, models.PropertyStatusActive, "Gauteng", 11, 80),
		prop("d", "D", models.PropertyTypeIndustrial, models.PropertyStatusDisposed, "Limpopo", 100, 80),
	}

	byType := ComputeBreakdownByType(props)
	require.Len(t, byType, 2)
	assert.Equal(t, TypeBreakdown{Type: models.PropertyTypeRetail, Value: 16, Count: 2}, byType[0])
	assert.Equal(t, TypeBreakdown{Type: models.PropertyTypeOffice, Value: 7, Count: 1}, byType[1])

	byRegion := ComputeBreakdownByRegion(props)
	require.Len(t, byRegion, 2)
	assert.Equal(t, RegionBreakdown{Region: "Western Cape", Value: 5, Properties: 1}, byRegion[0])
	assert.Equal(t, RegionBreakdown{Region: "Gauteng", Value: 18, Properties: 2}, byRegion[1])
}

func TestBreakdownTotalsReconcileWithMetrics(t *testing.T) {
	props := seededStore().Properties()

	total := ComputePortfolioMetrics(props).TotalValue
	var byType, byRegion float64
	for _, b := range ComputeBreakdownByType(props) {
		byType += b.Value
	}
	for _, b := range ComputeBreakdownByRegion(props) {
		byRegion += b.Value
	}
	assert.Equal(t, total, byType)
	assert.Equal(t, total, byRegion)
}

func TestComputeTransactionSummary(t *testing.T) {
	s := ComputeTransactionSummary([]models.Transaction{
		{Type: models.TransactionAcquisition, Value: 100},
		{Type: models.TransactionAcquisition, Value: 50},
		{Type: models.TransactionDisposal, Value: 80, ProfitLoss: utils.Ptr(-5.0)},
		{Type: models.TransactionDisposal, Value: 20, ProfitLoss: utils.Ptr(12.0)},
	})

	assert.Equal(t, TransactionSummary{
		Acquisitions:     2,
		AcquisitionValue: 150,
		Disposals:        2,
		DisposalValue:    100,
		NetProfitLoss:    7,
	}, s)
}

func TestComputeTenantSummary(t *testing.T) {
	tenants := RefreshTenantStatuses(seededStore().Tenants(), fixedNow, 6)

	s := ComputeTenantSummary(tenants)

	assert.Equal(t, 3, s.TotalTenants)
	assert.Equal(t, 1, s.ByStatus[models.TenantStatusActive])
	assert.Equal(t, 1, s.ByStatus[models.TenantStatusExpiringSoon])
	assert.Equal(t, 1, s.ByStatus[models.TenantStatusExpired])
	assert.Equal(t, 300.0, s.TotalArea)
	assert.Equal(t, 3000.0, s.TotalMonthlyRental)
}

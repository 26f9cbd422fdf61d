package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/utils"
)

func TestPropertyViewWithholdsMoneyFigures(t *testing.T) {
	p := prop("p1", "Alpha", models.PropertyTypeOffice, models.PropertyStatusActive, "Sandton", 100, 90)
	p.Financial.AcquisitionPrice = utils.Ptr(80.0)

	for _, role := range []models.Role{models.RoleAssetManager, models.RoleEmployee} {
		v := NewPropertyView(p, role)
		assert.Nil(t, v.Financial, role)
		assert.Nil(t, v.Metrics.Value, role)
		assert.Nil(t, v.Metrics.AnnualRevenue, role)
		assert.Nil(t, v.Metrics.ROI, role)
		assert.Nil(t, v.Metrics.YieldRate, role)
		assert.Equal(t, 90.0, v.Metrics.OccupancyRate, role)
		assert.Equal(t, 1000.0, v.Metrics.Size, role)
		assert.Equal(t, constants.FinancialAccessRefusal, FinancialNotice(role))
	}
}

func TestPropertyViewForFinancialRoles(t *testing.T) {
	p := prop("p1", "Alpha", models.PropertyTypeOffice, models.PropertyStatusActive, "Sandton", 100, 90)
	p.Financial.AcquisitionPrice = utils.Ptr(80.0)

	for _, role := range []models.Role{models.RoleExecutive, models.RoleFinance} {
		v := NewPropertyView(p, role)
		require.NotNil(t, v.Financial, role)
		require.NotNil(t, v.Metrics.AnnualRevenue, role)
		assert.Equal(t, 10.0, *v.Metrics.AnnualRevenue, role)
		assert.Equal(t, 80.0, *v.Financial.AcquisitionPrice, role)
		assert.Empty(t, FinancialNotice(role))
	}

	v := NewPropertyView(p, models.RoleExecutive)
	*v.Financial.AcquisitionPrice = 1
	assert.Equal(t, 80.0, *p.Financial.AcquisitionPrice)
}

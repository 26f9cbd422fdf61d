package services

import (
	"time"

	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/store"
	"github.com/propdash/portfolio-service/internal/utils"
)

var fixedNow = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func prop(id, name string, typ models.PropertyType, status models.PropertyStatus, region string, value, occupancy float64) models.Property {
	return models.Property{
		ID:     id,
		Name:   name,
		Type:   typ,
		Status: status,
		Location: models.Location{
			Address: id + " Street",
			Node:    "n/a",
			Region:  region,
		},
		Metrics: models.Metrics{
			Value:         value,
			Size:          1000,
			OccupancyRate: occupancy,
			AnnualRevenue: value / 10,
			ROI:           occupancy / 10,
		},
		Financial: models.Financial{CurrentValue: value},
	}
}

func withCoords(p models.Property, lat, lng float64) models.Property {
	p.Location.Lat = utils.Ptr(lat)
	p.Location.Lng = utils.Ptr(lng)
	return p
}

func tenant(id, name, industry string, expiries ...models.Date) models.Tenant {
	t := models.Tenant{ID: id, Name: name, Industry: industry, ContactPerson: "Contact " + id}
	for i, e := range expiries {
		t.Properties = append(t.Properties, models.Lease{
			PropertyID:    id + "-p" + string(rune('0'+i)),
			PropertyName:  name + " Building",
			TotalArea:     100,
			MonthlyRental: 1000,
			LeaseExpiry:   e,
		})
	}
	t.RecomputeTotals()
	return t
}

func notification(id string, typ models.NotificationType, read bool, roles ...models.Role) models.Notification {
	return models.Notification{
		ID:        id,
		Type:      typ,
		Category:  models.CategoryOccupancy,
		Title:     "Title " + id,
		Message:   "Message " + id,
		Timestamp: fixedNow,
		IsRead:    read,
		Roles:     roles,
	}
}

func seededStore() *store.Store {
	props := []models.Property{
		withCoords(prop("p1", "Sandton City Office Tower", models.PropertyTypeOffice, models.PropertyStatusActive, "Gauteng", 300, 90), -26.1076, 28.0567),
		withCoords(prop("p2", "Rosebank Retail Centre", models.PropertyTypeRetail, models.PropertyStatusActive, "Gauteng", 200, 80), -26.1467, 28.0436),
		prop("p3", "Durban Logistics Park", models.PropertyTypeIndustrial, models.PropertyStatusActive, "KwaZulu-Natal", 100, 70),
		prop("p4", "Old Mill", models.PropertyTypeIndustrial, models.PropertyStatusDisposed, "Western Cape", 0, 0),
	}
	tenants := []models.Tenant{
		tenant("t1", "Acme Consulting", "Professional Services", models.NewDate(2025, time.June, 30)),
		tenant("t2", "Bolt Retail", "Retail", models.NewDate(2028, time.January, 31)),
		tenant("t3", "Cobalt Mining", "Mining", models.NewDate(2024, time.December, 31)),
	}
	notes := []models.Notification{
		notification("n1", models.NotificationCritical, false, models.RoleExecutive, models.RoleAssetManager),
		notification("n2", models.NotificationInfo, true, models.RoleFinance),
		notification("n3", models.NotificationWarning, false, models.RoleEmployee, models.RoleExecutive),
	}
	txs := []models.Transaction{
		{ID: "tx1", Type: models.TransactionAcquisition, PropertyName: "Sandton City Office Tower", Date: models.NewDate(2021, time.May, 1), Value: 250},
		{ID: "tx2", Type: models.TransactionDisposal, PropertyName: "Old Mill", Date: models.NewDate(2023, time.August, 1), Value: 80, ProfitLoss: utils.Ptr(15.0)},
	}
	return store.New(props, tenants, notes, txs)
}

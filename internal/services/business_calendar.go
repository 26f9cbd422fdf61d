package services

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/za"

	"github.com/propdash/portfolio-service/internal/models"
)

// create once at init
var zaBusiness = cal.NewBusinessCalendar()

func init() {
	zaBusiness.AddHoliday(za.Holidays...)
}

// IsZAPublicHoliday reports whether t falls on a South African public holiday.
func IsZAPublicHoliday(t time.Time) bool {
	ok, _, _ := zaBusiness.IsHoliday(t)
	return ok
}

// BusinessDaysUntilExpiry counts South African working days from the day
// after now up to and including the tenant's earliest lease expiry. Lapsed
// leases and tenants without leases yield 0.
func BusinessDaysUntilExpiry(t models.Tenant, now time.Time) int {
	expiry, ok := t.EarliestExpiry()
	if !ok {
		return 0
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	end := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)

	count := 0
	for !day.After(end) {
		if zaBusiness.IsWorkday(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

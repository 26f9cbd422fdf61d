package services

import "github.com/propdash/portfolio-service/internal/models"

// NotificationPreferences are a viewer's per-type and per-category toggles.
// A type or category missing from the maps counts as enabled.
type NotificationPreferences struct {
	Types        map[models.NotificationType]bool     `json:"types"`
	Categories   map[models.NotificationCategory]bool `json:"categories"`
	SoundEnabled bool                                 `json:"soundEnabled"`
	EmailEnabled bool                                 `json:"emailEnabled"`
}

// DefaultNotificationPreferences enables everything except system notices,
// sound and e-mail.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		Types: map[models.NotificationType]bool{
			models.NotificationCritical: true,
			models.NotificationWarning:  true,
			models.NotificationInfo:     true,
			models.NotificationSuccess:  true,
		},
		Categories: map[models.NotificationCategory]bool{
			models.CategoryOccupancy:   true,
			models.CategoryFinancial:   true,
			models.CategoryLease:       true,
			models.CategoryMaintenance: true,
			models.CategoryTransaction: true,
			models.CategorySystem:      false,
		},
	}
}

func (p NotificationPreferences) Allows(n models.Notification) bool {
	if on, ok := p.Types[n.Type]; ok && !on {
		return false
	}
	if on, ok := p.Categories[n.Category]; ok && !on {
		return false
	}
	return true
}

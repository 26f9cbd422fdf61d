package models

import "time"

type NotificationType string

const (
	NotificationCritical NotificationType = "critical"
	NotificationWarning  NotificationType = "warning"
	NotificationInfo     NotificationType = "info"
	NotificationSuccess  NotificationType = "success"
)

type NotificationCategory string

const (
	CategoryOccupancy   NotificationCategory = "occupancy"
	CategoryFinancial   NotificationCategory = "financial"
	CategoryLease       NotificationCategory = "lease"
	CategoryMaintenance NotificationCategory = "maintenance"
	CategorySystem      NotificationCategory = "system"
	CategoryTransaction NotificationCategory = "transaction"
)

// Notification is an event directed at a subset of roles. PropertyID is a
// weak reference: the property may no longer exist.
type Notification struct {
	ID           string               `json:"id" validate:"required"`
	Type         NotificationType     `json:"type" validate:"oneof=critical warning info success"`
	Category     NotificationCategory `json:"category" validate:"oneof=occupancy financial lease maintenance system transaction"`
	Title        string               `json:"title" validate:"required"`
	Message      string               `json:"message"`
	Timestamp    time.Time            `json:"timestamp"`
	PropertyID   string               `json:"propertyId,omitempty"`
	PropertyName string               `json:"propertyName,omitempty"`
	IsRead       bool                 `json:"isRead"`
	ActionURL    string               `json:"actionUrl,omitempty"`
	Roles        []Role               `json:"roles" validate:"required,min=1,dive,oneof=executive asset-manager finance employee"`
}

// VisibleTo reports whether role is in the notification's allow-list.
func (n Notification) VisibleTo(role Role) bool {
	for _, r := range n.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (n Notification) Clone() Notification {
	out := n
	out.Roles = append([]Role(nil), n.Roles...)
	return out
}

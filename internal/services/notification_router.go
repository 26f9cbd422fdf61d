package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/store"
	"github.com/propdash/portfolio-service/internal/utils"
)

// CriticalAlertDispatcher is notified after a critical notification is
// published.
type CriticalAlertDispatcher interface {
	Dispatch(ctx context.Context, n models.Notification)
}

// NotificationRouter owns read/unread state and role-scoped views of the
// notification set. Every operation is total: unknown ids and roles give
// empty results or no-ops.
type NotificationRouter struct {
	mu            sync.RWMutex
	notifications []models.Notification
	store         *store.Store
	alerts        CriticalAlertDispatcher
	validate      *validator.Validate
}

// NewNotificationRouter seeds the router from the store's notifications.
// alerts may be nil.
func NewNotificationRouter(s *store.Store, alerts CriticalAlertDispatcher) *NotificationRouter {
	return &NotificationRouter{
		notifications: s.Notifications(),
		store:         s,
		alerts:        alerts,
		validate:      validator.New(),
	}
}

func (r *NotificationRouter) MarkAsRead(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].IsRead = true
			return
		}
	}
}

func (r *NotificationRouter) MarkAllAsRead(role models.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].VisibleTo(role) {
			r.notifications[i].IsRead = true
		}
	}
}

// ClearAll drops the role's read notifications. Unread ones are kept.
func (r *NotificationRouter) ClearAll(role models.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.VisibleTo(role) && n.IsRead {
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
}

// VisibleFor returns the role's notifications in insertion order.
func (r *NotificationRouter) VisibleFor(role models.Role) []models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Notification{}
	for _, n := range r.notifications {
		if n.VisibleTo(role) {
			out = append(out, n.Clone())
		}
	}
	return out
}

func (r *NotificationRouter) UnreadCount(role models.Role) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.notifications {
		if n.VisibleTo(role) && !n.IsRead {
			count++
		}
	}
	return count
}

// VisibleForWithPreferences narrows VisibleFor to the types and categories
// the viewer has switched on.
func (r *NotificationRouter) VisibleForWithPreferences(role models.Role, prefs NotificationPreferences) []models.Notification {
	visible := r.VisibleFor(role)
	out := visible[:0]
	for _, n := range visible {
		if prefs.Allows(n) {
			out = append(out, n)
		}
	}
	return out
}

// Publish appends a notification. Critical notifications are handed to the
// alert dispatcher once stored.
func (r *NotificationRouter) Publish(ctx context.Context, n models.Notification) error {
	if err := r.validate.StructCtx(ctx, n); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidPayload, err)
	}

	r.mu.Lock()
	for _, existing := range r.notifications {
		if existing.ID == n.ID {
			r.mu.Unlock()
			return utils.ErrDuplicateNotification
		}
	}
	r.notifications = append(r.notifications, n.Clone())
	r.mu.Unlock()

	utils.Logger.WithField("notification_id", n.ID).Debug("Published notification")

	if n.Type == models.NotificationCritical && r.alerts != nil {
		r.alerts.Dispatch(ctx, n)
	}
	return nil
}

// LinkedProperty resolves the property of a notification visible to role.
func (r *NotificationRouter) LinkedProperty(role models.Role, id string) (*models.Property, error) {
	for _, n := range r.VisibleFor(role) {
		if n.ID != id {
			continue
		}
		p, ok := r.FindProperty(n)
		if !ok {
			return nil, &utils.AppError{
				StatusCode: http.StatusNotFound,
				Code:       utils.ErrCodeNotFound,
				Message:    "Notification has no linked property",
				Err:        utils.ErrNotFound,
			}
		}
		return p, nil
	}
	return nil, &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    "Notification not found",
		Err:        utils.ErrNotFound,
	}
}

// FindProperty resolves a notification's property back-reference. The
// property may have gone away, in which case ok is false.
func (r *NotificationRouter) FindProperty(n models.Notification) (*models.Property, bool) {
	if n.PropertyID == "" {
		return nil, false
	}
	return r.store.PropertyByID(n.PropertyID)
}

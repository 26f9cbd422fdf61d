package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/propdash/portfolio-service/internal/dtos"
	"github.com/propdash/portfolio-service/internal/metrics"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/services"
	"github.com/propdash/portfolio-service/internal/utils"
)

type NotificationController struct {
	router  *services.NotificationRouter
	metrics *metrics.Metrics
}

func NewNotificationController(router *services.NotificationRouter, m *metrics.Metrics) *NotificationController {
	return &NotificationController{router: router, metrics: m}
}

// GET /api/v1/notifications?types=&categories=
//
// types and categories are optional comma lists; when given, only the
// listed values are shown.
func (c *NotificationController) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	types, categories := splitList(q.Get("types")), splitList(q.Get("categories"))

	var notes []models.Notification
	if len(types) == 0 && len(categories) == 0 {
		notes = c.router.VisibleFor(role)
	} else {
		prefs := services.NotificationPreferences{}
		if len(types) > 0 {
			prefs.Types = map[models.NotificationType]bool{}
			for _, t := range []models.NotificationType{
				models.NotificationCritical, models.NotificationWarning, models.NotificationInfo, models.NotificationSuccess,
			} {
				prefs.Types[t] = false
			}
			for _, t := range types {
				prefs.Types[models.NotificationType(t)] = true
			}
		}
		if len(categories) > 0 {
			prefs.Categories = map[models.NotificationCategory]bool{}
			for _, cat := range []models.NotificationCategory{
				models.CategoryOccupancy, models.CategoryFinancial, models.CategoryLease,
				models.CategoryMaintenance, models.CategorySystem, models.CategoryTransaction,
			} {
				prefs.Categories[cat] = false
			}
			for _, cat := range categories {
				prefs.Categories[models.NotificationCategory(cat)] = true
			}
		}
		notes = c.router.VisibleForWithPreferences(role, prefs)
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.NotificationListResponse{
		Notifications: notes,
		UnreadCount:   c.router.UnreadCount(role),
	})
}

// POST /api/v1/notifications/{id}/read
//
// Unknown ids are a no-op, so this always succeeds.
func (c *NotificationController) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}
	c.router.MarkAsRead(mux.Vars(r)["id"])
	c.respondUnread(w, role)
}

// POST /api/v1/notifications/read-all
func (c *NotificationController) MarkAllAsReadHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}
	c.router.MarkAllAsRead(role)
	c.respondUnread(w, role)
}

// POST /api/v1/notifications/clear
func (c *NotificationController) ClearAllHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}
	c.router.ClearAll(role)
	c.respondUnread(w, role)
}

// GET /api/v1/notifications/{id}/property
func (c *NotificationController) NotificationPropertyHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}

	p, err := c.router.LinkedProperty(role, mux.Vars(r)["id"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyResponse{
		PropertyView: services.NewPropertyView(*p, role),
		Notice:       services.FinancialNotice(role),
	})
}

func (c *NotificationController) respondUnread(w http.ResponseWriter, role models.Role) {
	for _, r := range models.AllRoles {
		c.metrics.SetUnread(string(r), c.router.UnreadCount(r))
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.UnreadCountResponse{UnreadCount: c.router.UnreadCount(role)})
}

package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/propdash/portfolio-service/internal/controllers"
	"github.com/propdash/portfolio-service/internal/middleware"
	"github.com/propdash/portfolio-service/internal/routes"
)

// NewRouter registers every route. Literal paths are registered before
// their {id} siblings so mux matches them first.
func (a *App) NewRouter() *mux.Router {
	cfg := a.Config

	healthController := controllers.NewHealthController()
	sessionController := controllers.NewSessionController()
	portfolioController := controllers.NewPortfolioController(a.Store, cfg.LeaseExpiringSoonMonths)
	propertyController := controllers.NewPropertyController(a.Store)
	tenantController := controllers.NewTenantController(a.Store, cfg.LeaseExpiringSoonMonths)
	notificationController := controllers.NewNotificationController(a.Notifications, a.Metrics)
	assistantController := controllers.NewAssistantController(a.Assistant)
	geocodeController := controllers.NewGeocodeController(a.Store, a.Geocoder, cfg.GeocodeProvider)

	router := mux.NewRouter()
	router.Use(middleware.MetricsMiddleware(a.Metrics))

	// Public routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Metrics, a.Metrics.Handler()).Methods(http.MethodGet)

	// Role-scoped routes
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.RoleMiddleware(cfg.RSAPublicKey, cfg.TokenIssuer))

	secured.HandleFunc(routes.Session, sessionController.GetSessionHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PortfolioMetrics, portfolioController.GetMetricsHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Properties, propertyController.ListPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertiesNearby, propertyController.NearbyPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertySelection, propertyController.SelectionHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertiesCompare, propertyController.CompareHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertyByID, propertyController.GetPropertyHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Tenants, tenantController.ListTenantsHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Notifications, notificationController.ListNotificationsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.NotificationsRead, notificationController.MarkAllAsReadHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.NotificationsClear, notificationController.ClearAllHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.NotificationRead, notificationController.MarkAsReadHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.NotificationTarget, notificationController.NotificationPropertyHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.AssistantGreeting, assistantController.GreetingHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AssistantChat, assistantController.ChatHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.GeocodeEnrich, geocodeController.EnrichHandler).Methods(http.MethodPost)

	return router
}

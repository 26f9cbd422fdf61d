package routes

const (
	Health  = "/health"
	Metrics = "/metrics"

	Session            = "/api/v1/session"
	PortfolioMetrics   = "/api/v1/portfolio/metrics"
	Properties         = "/api/v1/properties"
	PropertiesNearby   = "/api/v1/properties/nearby"
	PropertyByID       = "/api/v1/properties/{id}"
	PropertySelection  = "/api/v1/properties/selection"
	PropertiesCompare  = "/api/v1/properties/compare"
	Tenants            = "/api/v1/tenants"
	Notifications      = "/api/v1/notifications"
	NotificationRead   = "/api/v1/notifications/{id}/read"
	NotificationTarget = "/api/v1/notifications/{id}/property"
	NotificationsRead  = "/api/v1/notifications/read-all"
	NotificationsClear = "/api/v1/notifications/clear"
	AssistantGreeting  = "/api/v1/assistant"
	AssistantChat      = "/api/v1/assistant/chat"
	GeocodeEnrich      = "/api/v1/geocode/enrich"
)

package app

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/twilio/twilio-go"

	"github.com/propdash/portfolio-service/internal/config"
	"github.com/propdash/portfolio-service/internal/geocoding"
	"github.com/propdash/portfolio-service/internal/metrics"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/services"
	"github.com/propdash/portfolio-service/internal/store"
	"github.com/propdash/portfolio-service/internal/utils"
)

const alertFromName = "PropDash Alerts"

type App struct {
	Config        *config.Config
	Store         *store.Store
	Metrics       *metrics.Metrics
	Notifications *services.NotificationRouter
	Assistant     *services.AssistantService
	LeaseSweep    *services.LeaseSweepService
	Geocoder      *geocoding.Runner
}

// NewApp builds the store and every service around it. Geocoder is nil when
// no provider is configured.
func NewApp(cfg *config.Config) (*App, error) {
	var ds Dataset
	if cfg.LDFlag_SeedDemoData {
		seeded, err := LoadSeedDataset()
		if err != nil {
			return nil, fmt.Errorf("load seed dataset: %w", err)
		}
		ds = seeded
		utils.Logger.Infof("Seeded store with %d properties, %d tenants", len(ds.Properties), len(ds.Tenants))
	} else {
		utils.Logger.Info("Demo seed disabled; starting with an empty store.")
	}
	return newApp(cfg, ds, alertSenders(cfg)...)
}

func newApp(cfg *config.Config, ds Dataset, senders ...services.AlertSender) (*App, error) {
	s := store.New(ds.Properties, ds.Tenants, ds.Notifications, ds.Transactions)
	m := metrics.New()

	var dispatcher services.CriticalAlertDispatcher
	if len(senders) > 0 {
		dispatcher = services.NewAlertService(senders...)
	}
	router := services.NewNotificationRouter(s, dispatcher)

	a := &App{
		Config:        cfg,
		Store:         s,
		Metrics:       m,
		Notifications: router,
		Assistant:     services.NewAssistantService(s, cfg.LeaseExpiringSoonMonths),
		LeaseSweep:    services.NewLeaseSweepService(s, router, cfg.LeaseExpiringSoonMonths),
	}

	if cfg.GeocodeProvider != "" {
		provider, err := geocoding.NewProvider(cfg.GeocodeProvider, cfg.GeocodeAPIKey, geocoding.Options{})
		if err != nil {
			return nil, err
		}
		a.Geocoder = geocoding.NewRunner(provider, geocoding.WithMetrics(m))
		utils.Logger.Infof("Geocoding provider: %s", provider.Name())
	}

	a.RefreshUnreadGauge()
	return a, nil
}

// RefreshUnreadGauge republishes the unread count of every role.
func (a *App) RefreshUnreadGauge() {
	for _, role := range models.AllRoles {
		a.Metrics.SetUnread(string(role), a.Notifications.UnreadCount(role))
	}
}

func alertSenders(cfg *config.Config) []services.AlertSender {
	var senders []services.AlertSender
	if cfg.LDFlag_EmailCriticalAlerts && cfg.SendGridAPIKey != "" {
		senders = append(senders, services.NewEmailAlertSender(
			sendgrid.NewSendClient(cfg.SendGridAPIKey),
			alertFromName,
			cfg.AlertFromEmail,
			cfg.AlertToEmail,
			cfg.LDFlag_SendgridSandboxMode,
		))
	}
	if cfg.LDFlag_SMSCriticalAlerts && cfg.TwilioAccountSID != "" {
		tw := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
		senders = append(senders, services.NewSMSAlertSender(tw.Api, cfg.TwilioFromPhone, cfg.AlertToPhone))
	}
	return senders
}

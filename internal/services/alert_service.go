package services

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/utils"
)

// AlertSender delivers a critical notification out of band.
type AlertSender interface {
	Name() string
	Send(ctx context.Context, n models.Notification) error
}

// mailClient is satisfied by *sendgrid.Client.
type mailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// smsClient is satisfied by (*twilio.RestClient).Api.
type smsClient interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type EmailAlertSender struct {
	client      mailClient
	fromName    string
	fromAddress string
	toAddress   string
	sandbox     bool
}

func NewEmailAlertSender(client mailClient, fromName, fromAddress, toAddress string, sandbox bool) *EmailAlertSender {
	return &EmailAlertSender{
		client:      client,
		fromName:    fromName,
		fromAddress: fromAddress,
		toAddress:   toAddress,
		sandbox:     sandbox,
	}
}

func (s *EmailAlertSender) Name() string { return "sendgrid" }

func (s *EmailAlertSender) Send(_ context.Context, n models.Notification) error {
	from := mail.NewEmail(s.fromName, s.fromAddress)
	to := mail.NewEmail("", s.toAddress)
	subject := fmt.Sprintf("[Critical] %s", n.Title)
	plain := alertText(n)
	var body strings.Builder
	if err := criticalAlertTemplate.Execute(&body, n); err != nil {
		return fmt.Errorf("failed to render alert email: %w", err)
	}

	msg := mail.NewSingleEmail(from, subject, to, plain, body.String())
	if s.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	resp, err := s.client.Send(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp != nil && resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid returned status %d", utils.ErrExternalServiceFailure, resp.StatusCode)
	}
	return nil
}

type SMSAlertSender struct {
	client    smsClient
	fromPhone string
	toPhone   string
}

func NewSMSAlertSender(client smsClient, fromPhone, toPhone string) *SMSAlertSender {
	return &SMSAlertSender{client: client, fromPhone: fromPhone, toPhone: toPhone}
}

func (s *SMSAlertSender) Name() string { return "twilio" }

func (s *SMSAlertSender) Send(_ context.Context, n models.Notification) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.toPhone)
	params.SetFrom(s.fromPhone)
	params.SetBody(alertText(n))

	if _, err := s.client.CreateMessage(params); err != nil {
		return fmt.Errorf("%w: failed to send sms via twilio: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}

func alertText(n models.Notification) string {
	if n.PropertyName != "" {
		return fmt.Sprintf("%s (%s): %s", n.Title, n.PropertyName, n.Message)
	}
	return fmt.Sprintf("%s: %s", n.Title, n.Message)
}

// AlertService fans a critical notification out to every configured
// sender. Delivery failures are logged and never reach the publisher.
type AlertService struct {
	senders []AlertSender
}

func NewAlertService(senders ...AlertSender) *AlertService {
	return &AlertService{senders: senders}
}

func (s *AlertService) Dispatch(ctx context.Context, n models.Notification) {
	for _, sender := range s.senders {
		if err := sender.Send(ctx, n); err != nil {
			utils.Logger.WithError(err).
				WithField("sender", sender.Name()).
				WithField("notification_id", n.ID).
				Error("Failed to deliver critical alert")
			continue
		}
		utils.Logger.WithField("sender", sender.Name()).
			WithField("notification_id", n.ID).
			Info("Critical alert delivered")
	}
}

// Titles and tenant names are untrusted and must go through html/template.
var criticalAlertTemplate = template.Must(template.New("critical_alert").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2 style="color: #b91c1c;">{{.Title}}</h2>
  <p>{{.Message}}</p>
  {{- if .PropertyName}}
  <p style="color: #6b7280;">Property: {{.PropertyName}}</p>
  {{- end}}
</body>
</html>`))

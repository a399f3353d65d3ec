// Package notify delivers reminder messages to customers.
package notify

import (
	"context"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BruksfildServices01/studio-manager/internal/config"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
)

type Sender interface {
	Channel() string
	// Send returns the provider message id when one exists.
	Send(ctx context.Context, to, body string) (string, error)
}

// New returns a Twilio sender when credentials are configured and a
// log-only sender otherwise.
func New(cfg *config.Config, log *slog.Logger) Sender {
	log = logger.Component(log, "notify")
	if !cfg.SMSEnabled() {
		log.Info("sms disabled, reminders are only logged")
		return NewLogSender(log)
	}
	return NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *TwilioSender) Channel() string {
	return "sms"
}

func (s *TwilioSender) Send(_ context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}

type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Channel() string {
	return "log"
}

func (s *LogSender) Send(_ context.Context, to, body string) (string, error) {
	s.log.Info("reminder", "to", to, "body", body)
	return "", nil
}

package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSConfig настройки Twilio
type SMSConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	To         string // телефон магазина для оповещений
	Timeout    time.Duration
}

// SMSSender оповещает магазин о новой записи по SMS
type SMSSender struct {
	from   string
	to     string
	client *twilio.RestClient
}

// NewSMSSender создает отправителя SMS
func NewSMSSender(cfg SMSConfig) *SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &SMSSender{
		from:   cfg.From,
		to:     cfg.To,
		client: client,
	}
}

func (s *SMSSender) Channel() string {
	return "sms"
}

// Send отправляет SMS на телефон магазина
func (s *SMSSender) Send(ctx context.Context, notice *BookingNotice) error {
	if s.to == "" {
		return ErrNoRecipient
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(notice.ShopAlert())

	err := runWithContext(ctx, func() error {
		_, err := s.client.Api.CreateMessage(params)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: sms: %v", ErrSendFailed, err)
	}
	return nil
}

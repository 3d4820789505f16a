package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailConfig настройки SMTP
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ShopCopy string // адрес магазина для оповещений, пусто - не отправлять
}

// EmailSender отправляет по почте подтверждение клиенту и оповещение магазину
type EmailSender struct {
	cfg    EmailConfig
	dialer *gomail.Dialer
}

// NewEmailSender создает отправителя писем
func NewEmailSender(cfg EmailConfig) *EmailSender {
	return &EmailSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *EmailSender) Channel() string {
	return "email"
}

// Send отправляет подтверждение клиенту и отдельное оповещение на адрес магазина
func (s *EmailSender) Send(ctx context.Context, notice *BookingNotice) error {
	messages := make([]*gomail.Message, 0, 2)
	if notice.CustomerEmail != nil && *notice.CustomerEmail != "" {
		messages = append(messages, s.newMessage(*notice.CustomerEmail, notice.Subject(), notice.Body()))
	}
	if s.cfg.ShopCopy != "" {
		messages = append(messages, s.newMessage(s.cfg.ShopCopy, notice.AlertSubject(), notice.ShopAlert()))
	}
	if len(messages) == 0 {
		return ErrNoRecipient
	}

	err := runWithContext(ctx, func() error {
		return s.dialer.DialAndSend(messages...)
	})
	if err != nil {
		return fmt.Errorf("%w: email: %v", ErrSendFailed, err)
	}
	return nil
}

func (s *EmailSender) newMessage(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

package notifier

import "context"

// Sender канал доставки уведомления о записи
type Sender interface {
	Channel() string
	Send(ctx context.Context, notice *BookingNotice) error
}

// Metrics интерфейс метрик уведомлений
type Metrics interface {
	IncNotification(channel string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

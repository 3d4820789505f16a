package notifier

import "errors"

var (
	// ErrNoRecipient возвращается, когда у канала нет адресата
	ErrNoRecipient = errors.New("notifier: no recipient")

	// ErrSendFailed возвращается при ошибке отправки
	ErrSendFailed = errors.New("notifier: send failed")

	// ErrQueueFull возвращается, когда очередь уведомлений переполнена
	ErrQueueFull = errors.New("notifier: queue is full")

	// ErrClosed возвращается при отправке после остановки диспетчера
	ErrClosed = errors.New("notifier: dispatcher closed")
)

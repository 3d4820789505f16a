package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// queuePerWorker размер очереди уведомлений на одного воркера
const queuePerWorker = 64

type job struct {
	sender Sender
	notice *BookingNotice
}

// Dispatcher рассылает уведомления в фоне через пул горутин
// Ошибка доставки только логируется: запись уже сохранена и не откатывается.
type Dispatcher struct {
	pool    *ants.Pool
	senders []Sender
	timeout time.Duration
	metrics Metrics
	logger  Logger

	queue    chan job
	loopDone chan struct{}
	mu       sync.RWMutex
	closed   bool
	wg       sync.WaitGroup
}

// NewDispatcher создает диспетчер с пулом из workers горутин
func NewDispatcher(workers int, timeout time.Duration, senders []Sender, metrics Metrics, logger Logger) (*Dispatcher, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create notify pool: %w", err)
	}

	d := &Dispatcher{
		pool:     pool,
		senders:  senders,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
		queue:    make(chan job, workers*queuePerWorker),
		loopDone: make(chan struct{}),
	}
	go d.loop()

	return d, nil
}

// Notify ставит отправку по всем каналам в очередь и не ждет ни пула, ни доставки.
// При переполненной очереди уведомление по каналу считается неотправленным.
func (d *Dispatcher) Notify(notice BookingNotice) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	var dropped []string
	for _, sender := range d.senders {
		select {
		case d.queue <- job{sender: sender, notice: &notice}:
		default:
			d.fail(sender, &notice, ErrQueueFull)
			dropped = append(dropped, sender.Channel())
		}
	}

	if len(dropped) > 0 {
		return fmt.Errorf("%w: %w: %s", ErrSendFailed, ErrQueueFull, strings.Join(dropped, ", "))
	}
	return nil
}

// loop передает задачи из очереди в пул, ожидание свободного воркера происходит здесь
func (d *Dispatcher) loop() {
	defer close(d.loopDone)

	for j := range d.queue {
		d.wg.Add(1)
		err := d.pool.Submit(func() {
			defer d.wg.Done()
			d.send(j.sender, j.notice)
		})
		if err != nil {
			d.wg.Done()
			d.fail(j.sender, j.notice, err)
		}
	}
}

func (d *Dispatcher) send(sender Sender, notice *BookingNotice) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	err := runWithContext(ctx, func() error {
		return sender.Send(ctx, notice)
	})
	if errors.Is(err, ErrNoRecipient) {
		return
	}
	if d.metrics != nil {
		d.metrics.IncNotification(sender.Channel(), err)
	}
	if err != nil {
		d.logger.Warn("Notify: %s notification for appointment id=%d failed: %v", sender.Channel(), notice.AppointmentID, err)
		return
	}
	d.logger.Info("Notify: %s notification for appointment id=%d sent", sender.Channel(), notice.AppointmentID)
}

func (d *Dispatcher) fail(sender Sender, notice *BookingNotice, err error) {
	if d.metrics != nil {
		d.metrics.IncNotification(sender.Channel(), err)
	}
	d.logger.Error("Notify: failed to queue %s notification for appointment id=%d: %v",
		sender.Channel(), notice.AppointmentID, err)
}

// Close дожидается отправки поставленных уведомлений и останавливает пул.
// Каждая отправка ограничена таймаутом, поэтому ожидание конечно.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.loopDone
	d.wg.Wait()
	d.pool.Release()
}

package notification

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Notifier is the fire-and-forget sink workflow steps publish to when
// they change state visible to a user. Enqueueing never blocks and
// never fails the caller; delivery outcome is logged and discarded.
type Notifier interface {
	Notify(userID uint, title, message, severity string)
}

// Dispatcher persists notifications off the request path through a
// buffered channel and a single worker goroutine.
type Dispatcher struct {
	repo NotificationRepository
	ch   chan Notification
	wg   sync.WaitGroup
	once sync.Once
}

func NewDispatcher(repo NotificationRepository, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	d := &Dispatcher{
		repo: repo,
		ch:   make(chan Notification, buffer),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for n := range d.ch {
		n := n
		if err := d.repo.Create(&n); err != nil {
			log.Error().Err(err).
				Uint("user_id", n.UserID).
				Str("title", n.Title).
				Msg("notification delivery failed")
		}
	}
}

// Notify enqueues a notification and returns immediately. If the buffer
// is full the notification is dropped and logged, never blocking the
// originating request.
func (d *Dispatcher) Notify(userID uint, title, message, severity string) {
	n := Notification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Severity: severity,
	}
	select {
	case d.ch <- n:
	default:
		log.Warn().
			Uint("user_id", userID).
			Str("title", title).
			Msg("notification queue full, dropping")
	}
}

// Close drains the queue and stops the worker. Called on shutdown.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.ch)
	})
	d.wg.Wait()
}

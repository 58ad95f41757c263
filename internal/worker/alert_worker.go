package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fundtrackr/internal/amqp"
	"fundtrackr/internal/log"
)

// Notifier delivers one alert to the user. Delivering to a slot that
// already holds an alert replaces it, so only the latest alert per slot
// stays visible.
type Notifier interface {
	Notify(ctx context.Context, slot int, title, body string) error
}

// LogNotifier writes alerts to the structured log. It is the default
// delivery channel when no external notifier is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, slot int, title, body string) error {
	slog.InfoContext(ctx, "Alert delivered",
		log.FieldAlertSlot, slot,
		log.FieldTitle, title,
		"body", body)
	return nil
}

// AlertWorker consumes alert messages from the queue and pushes them to
// the notifier, keeping per-slot replacement semantics.
type AlertWorker struct {
	notifier Notifier

	mu         sync.Mutex
	lastBySlot map[int]time.Time
}

func NewAlertWorker(notifier Notifier) *AlertWorker {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &AlertWorker{
		notifier:   notifier,
		lastBySlot: make(map[int]time.Time),
	}
}

// HandleAlertMessage processes a single alert message from AMQP. Stale
// messages, those older than one already delivered on the same slot,
// are dropped: the slot already shows something newer.
func (w *AlertWorker) HandleAlertMessage(ctx context.Context, msg *amqp.AlertMessage) error {
	if w.stale(msg) {
		slog.InfoContext(ctx, "Dropping stale alert",
			log.FieldAlertSlot, msg.Slot,
			"timestamp", msg.Timestamp)
		return nil
	}

	if err := w.notifier.Notify(ctx, msg.Slot, msg.Title, msg.Body); err != nil {
		return fmt.Errorf("notify slot %d: %w", msg.Slot, err)
	}

	w.markDelivered(msg)
	return nil
}

func (w *AlertWorker) stale(msg *amqp.AlertMessage) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	last, ok := w.lastBySlot[msg.Slot]
	return ok && msg.Timestamp.Before(last)
}

func (w *AlertWorker) markDelivered(msg *amqp.AlertMessage) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if msg.Timestamp.After(w.lastBySlot[msg.Slot]) {
		w.lastBySlot[msg.Slot] = msg.Timestamp
	}
}

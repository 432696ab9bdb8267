package mail

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

const sendTimeout = 30 * time.Second

var _ model.Notifier = (*Dispatcher)(nil)

// Dispatcher queues messages and delivers them from a background worker.
// Delivery failures are logged and never reach the caller.
type Dispatcher struct {
	mailer model.Mailer
	log    *logger.Logger
	queue  chan model.Message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher creates a dispatcher with a queue of queueSize messages.
func NewDispatcher(mailer model.Mailer, log *logger.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		mailer: mailer,
		log:    log,
		queue:  make(chan model.Message, queueSize),
		done:   make(chan struct{}),
	}
}

// Start runs the worker until Close is called. Messages still queued at
// that point are delivered before the worker exits.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		defer close(d.done)
		for msg := range d.queue {
			d.deliver(ctx, msg)
		}
	}()
}

// Dispatch enqueues msg. When the queue is full or the dispatcher is closed
// the message is dropped.
func (d *Dispatcher) Dispatch(msg model.Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Mail: dispatcher closed, message dropped", "to", msg.To, "subject", msg.Subject)
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.log.Warn("Mail: queue full, message dropped", "to", msg.To, "subject", msg.Subject)
	}
}

// Close stops accepting messages and waits for the worker to drain the queue.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg model.Message) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	if err := d.mailer.Send(sendCtx, msg); err != nil {
		d.log.Error("Mail: failed to deliver message", "to", msg.To, "subject", msg.Subject, "error", err)
		return
	}
	d.log.Debug("Mail: message delivered", "to", msg.To, "subject", msg.Subject)
}

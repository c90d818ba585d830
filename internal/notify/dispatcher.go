package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Gateway delivers a single event envelope. Implementations may block up to
// the dispatcher's delivery timeout.
type Gateway interface {
	Deliver(ctx context.Context, kind string, event any) error
}

const (
	KindBookingCreated   = "booking.created"
	KindBookingCancelled = "booking.cancelled"
)

type envelope struct {
	kind  string
	event any
}

// Dispatcher decouples event emission from delivery: Booking* calls enqueue
// onto a buffered channel and return immediately; a single worker drains the
// channel and hands each event to the Gateway. A full buffer drops the event
// with a logged warning rather than blocking a booking request.
type Dispatcher struct {
	gateway Gateway
	logger  *slog.Logger
	timeout time.Duration

	queue chan envelope
	done  chan struct{}
	once  sync.Once
}

func NewDispatcher(gateway Gateway, logger *slog.Logger, buffer int, timeout time.Duration) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if buffer <= 0 {
		buffer = 64
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	d := &Dispatcher{
		gateway: gateway,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan envelope, buffer),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) BookingCreated(_ context.Context, event BookingEvent) {
	d.enqueue(envelope{kind: KindBookingCreated, event: event})
}

func (d *Dispatcher) BookingCancelled(_ context.Context, event CancellationEvent) {
	d.enqueue(envelope{kind: KindBookingCancelled, event: event})
}

func (d *Dispatcher) enqueue(e envelope) {
	select {
	case d.queue <- e:
	default:
		d.logger.Warn("notification queue full, dropping event", "kind", e.kind)
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for e := range d.queue {
		// Delivery outlives the request that produced the event, so it
		// runs on its own timeout, not the request context.
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.gateway.Deliver(ctx, e.kind, e.event); err != nil {
			d.logger.Error("notification delivery failed", "kind", e.kind, "error", err)
		}
		cancel()
	}
}

// Close stops accepting events and waits for the worker to drain the queue.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}

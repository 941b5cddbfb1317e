package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nutribook/internal/logger"
	"nutribook/internal/metrics"
)

const DefaultTimeout = 5 * time.Second

// Dispatcher fans a notification out to every sender in the background. The
// caller never waits for delivery and never sees a delivery error.
type Dispatcher struct {
	senders []Sender
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, senders ...Sender) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{senders: senders, timeout: timeout}
}

// Dispatch starts one delivery per sender. Deliveries outlive ctx's
// cancellation but are bounded by the dispatcher timeout.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		logger.Warn("notification dropped after shutdown", "type", n.Type, "booking_id", n.Facts.BookingID)
		return
	}
	d.wg.Add(len(d.senders))
	d.mu.Unlock()

	base := context.WithoutCancel(ctx)
	for _, s := range d.senders {
		go d.deliver(base, s, n)
	}
}

func (d *Dispatcher) deliver(base context.Context, s Sender, n Notification) {
	defer d.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordNotification(s.Name(), "failed")
			logger.Error("notification sender panicked",
				"channel", s.Name(),
				"type", n.Type,
				"booking_id", n.Facts.BookingID,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(base, d.timeout)
	defer cancel()

	if err := s.Send(ctx, n); err != nil {
		metrics.RecordNotification(s.Name(), "failed")
		logger.Warn("notification delivery failed",
			"channel", s.Name(),
			"type", n.Type,
			"role", n.Role,
			"booking_id", n.Facts.BookingID,
			"error", err,
		)
		return
	}
	metrics.RecordNotification(s.Name(), "sent")
}

// Wait blocks until every started delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Shutdown stops accepting notifications and waits for in-flight deliveries
// until ctx is done.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notifications still in flight: %w", ctx.Err())
	}
}

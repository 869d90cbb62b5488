package order

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
)

const DefaultPollInterval = 5 * time.Second

// Tracker polls one order's status while its tracking view is visible.
// At most one refresh is in flight at a time; a tick that fires while a
// refresh is outstanding is dropped, not queued. Cancelling the Run
// context stops polling deterministically: a refresh already in flight
// has its result discarded on arrival.
type Tracker struct {
	svc      *Service
	orderID  string
	interval time.Duration
	onChange func(from, to domain.OrderStatus)

	busy atomic.Bool

	mu       sync.Mutex
	status   domain.OrderStatus
	terminal chan struct{} // closed once the status turns terminal
}

func NewTracker(svc *Service, o *domain.Order, interval time.Duration, onChange func(from, to domain.OrderStatus)) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	t := &Tracker{
		svc:      svc,
		orderID:  o.ID,
		interval: interval,
		onChange: onChange,
		status:   o.Status,
		terminal: make(chan struct{}),
	}
	if o.Status.IsTerminal() {
		close(t.terminal)
	}
	return t
}

// Status is the last polled (or locally cancelled) status.
func (t *Tracker) Status() domain.OrderStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// MarkCancelled reflects a successful user cancellation without waiting
// for the next poll.
func (t *Tracker) MarkCancelled() {
	t.apply(domain.OrderStatusCancelled)
}

// Run blocks until the context is cancelled or the status turns terminal.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.tick(ctx)
		case <-t.terminal:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (t *Tracker) tick(ctx context.Context) {
	if !t.busy.CompareAndSwap(false, true) {
		return // previous refresh still outstanding
	}
	go func() {
		defer t.busy.Store(false)
		o, err := t.svc.Refresh(ctx, t.orderID)
		if err != nil {
			return // silent, retried on the next tick
		}
		if ctx.Err() != nil {
			return // view dismissed while the refresh was in flight
		}
		t.apply(o.Status)
	}()
}

func (t *Tracker) apply(status domain.OrderStatus) {
	t.mu.Lock()
	from := t.status
	if from == status || from.IsTerminal() {
		// Terminal statuses have no outgoing transitions: a stale refresh
		// result landing after a local cancellation must not revive the order.
		t.mu.Unlock()
		return
	}
	t.status = status
	if status.IsTerminal() {
		close(t.terminal)
	}
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange(from, status)
	}
}

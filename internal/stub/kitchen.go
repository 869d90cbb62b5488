package stub

import (
	"context"
	"log"
	"time"

	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
)

// Kitchen advances every non-terminal order one step per tick
// (pending → preparing → ready → completed), simulating the shop working
// through the queue so the client's tracking view has transitions to show.
type Kitchen struct {
	store    OrderStore
	interval time.Duration
}

func NewKitchen(store OrderStore, interval time.Duration) *Kitchen {
	return &Kitchen{store: store, interval: interval}
}

func (k *Kitchen) Run(ctx context.Context) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			k.advanceAll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (k *Kitchen) advanceAll(ctx context.Context) {
	orders, err := k.store.List(ctx)
	if err != nil {
		log.Printf("kitchen: list orders failed: %v", err)
		return
	}
	for _, o := range orders {
		next, ok := nextStatus(o.Status)
		if !ok {
			continue
		}
		o.Status = next
		o.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := k.store.Put(ctx, o); err != nil {
			log.Printf("kitchen: advance order %s failed: %v", o.ID, err)
		}
	}
}

func nextStatus(s domain.OrderStatus) (domain.OrderStatus, bool) {
	switch s {
	case domain.OrderStatusPending:
		return domain.OrderStatusPreparing, true
	case domain.OrderStatusPreparing:
		return domain.OrderStatusReady, true
	case domain.OrderStatusReady:
		return domain.OrderStatusCompleted, true
	default:
		return s, false
	}
}

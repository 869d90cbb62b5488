package stub

import (
	"context"
	"testing"

	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKitchenAdvancesOneStepPerTick(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, testOrder("o-1")))

	k := NewKitchen(store, 0)
	want := []domain.OrderStatus{
		domain.OrderStatusPreparing,
		domain.OrderStatusReady,
		domain.OrderStatusCompleted,
	}
	for _, status := range want {
		k.advanceAll(ctx)
		got, err := store.Get(ctx, "o-1")
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	// Completed is terminal; further ticks leave it alone.
	k.advanceAll(ctx)
	got, err := store.Get(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, got.Status)
}

func TestKitchenLeavesCancelledOrdersAlone(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	o := testOrder("o-1")
	o.Status = domain.OrderStatusCancelled
	require.NoError(t, store.Put(ctx, o))

	NewKitchen(store, 0).advanceAll(ctx)

	got, err := store.Get(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from domain.OrderStatus
		to   domain.OrderStatus
		ok   bool
	}{
		{domain.OrderStatusPending, domain.OrderStatusPreparing, true},
		{domain.OrderStatusPreparing, domain.OrderStatusReady, true},
		{domain.OrderStatusReady, domain.OrderStatusCompleted, true},
		{domain.OrderStatusCompleted, domain.OrderStatusCompleted, false},
		{domain.OrderStatusCancelled, domain.OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		next, ok := nextStatus(tt.from)
		assert.Equal(t, tt.ok, ok, "from %s", tt.from)
		assert.Equal(t, tt.to, next, "from %s", tt.from)
	}
}

func TestSeedCatalogIsDeterministic(t *testing.T) {
	a := SeedCatalog(10)
	b := SeedCatalog(10)
	require.Len(t, a, 10)
	assert.Equal(t, a, b)

	for _, p := range a {
		assert.NotEmpty(t, p.Name)
		assert.Positive(t, p.Price)
	}
}

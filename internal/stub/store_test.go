package stub

import (
	"context"
	"testing"

	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(id string) *domain.Order {
	return &domain.Order{
		ID:          id,
		OrderNumber: "QW-0001",
		Total:       2000,
		Status:      domain.OrderStatusPending,
	}
}

func runStoreSuite(t *testing.T, store OrderStore) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	require.NoError(t, store.Put(ctx, testOrder("o-1")))
	require.NoError(t, store.Put(ctx, testOrder("o-2")))

	got, err := store.Get(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "o-1", got.ID)
	assert.Equal(t, domain.OrderStatusPending, got.Status)

	// Put on an existing id overwrites.
	updated := testOrder("o-1")
	updated.Status = domain.OrderStatusReady
	require.NoError(t, store.Put(ctx, updated))
	got, err = store.Get(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReady, got.Status)

	orders, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	runStoreSuite(t, NewRedisStore(client))
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, testOrder("o-1")))

	got, err := store.Get(ctx, "o-1")
	require.NoError(t, err)
	got.Status = domain.OrderStatusCancelled

	again, err := store.Get(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, again.Status, "mutating a read must not touch the store")
}

func TestRedisStoreListSkipsStaleIndexEntries(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client)
	require.NoError(t, store.Put(ctx, testOrder("o-1")))
	require.NoError(t, store.Put(ctx, testOrder("o-2")))

	// Drop the value but leave the index entry behind.
	mr.Del(orderKey("o-2"))

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o-1", orders[0].ID)
}

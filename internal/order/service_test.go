package order

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/MuriellekPINSO/qualiwo-go/internal/api"
	"github.com/MuriellekPINSO/qualiwo-go/internal/cart"
	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mu sync.Mutex

	createResp *api.CreateOrderResponse
	createErr  error
	createReq  *api.CreateOrderRequest // captures the last create request

	order    *domain.Order
	getErr   error
	getCalls int
	block    chan struct{} // when set, GetOrder waits for it

	updateErr   error
	updateCalls int
}

func (m *mockBackend) CreateOrder(_ context.Context, req *api.CreateOrderRequest) (*api.CreateOrderResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createReq = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createResp, nil
}

func (m *mockBackend) GetOrder(context.Context, string) (*domain.Order, error) {
	m.mu.Lock()
	m.getCalls++
	block := m.block
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	o := *m.order
	return &o, nil
}

func (m *mockBackend) UpdateOrderStatus(context.Context, string, domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	return m.updateErr
}

func (m *mockBackend) calls() (get, update int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls, m.updateCalls
}

func snapshot() []cart.Line {
	c := cart.New()
	c.Add(domain.Product{ID: "a", Name: "A", Price: 500})
	c.Add(domain.Product{ID: "a", Name: "A", Price: 500})
	c.Add(domain.Product{ID: "b", Name: "B", Price: 1000})
	return c.Snapshot()
}

func TestSubmitBuildsRequest(t *testing.T) {
	backend := &mockBackend{
		createResp: &api.CreateOrderResponse{
			Success:     true,
			OrderID:     "o-1",
			OrderNumber: "QW-0001",
			Order:       domain.Order{ID: "o-1", OrderNumber: "QW-0001", Total: 2000, Status: domain.OrderStatusPending},
		},
	}
	svc := NewService(backend)

	o, err := svc.Submit(context.Background(), snapshot())
	require.NoError(t, err)
	assert.Equal(t, "o-1", o.ID)
	assert.Equal(t, domain.OrderStatusPending, o.Status)

	require.NotNil(t, backend.createReq)
	assert.Equal(t, int64(2000), backend.createReq.TotalAmount)
	require.Len(t, backend.createReq.CartItems, 2)
	assert.Equal(t, api.CartItemDTO{ProductID: "a", ProductName: "A", Quantity: 2, Price: 500}, backend.createReq.CartItems[0])
	assert.Equal(t, api.CartItemDTO{ProductID: "b", ProductName: "B", Quantity: 1, Price: 1000}, backend.createReq.CartItems[1])
}

func TestSubmitFillsIdentityFromEnvelope(t *testing.T) {
	// some backend variants omit id/number inside the nested order
	backend := &mockBackend{
		createResp: &api.CreateOrderResponse{
			OrderID:     "o-2",
			OrderNumber: "QW-0002",
			Order:       domain.Order{Total: 500, Status: domain.OrderStatusPending},
		},
	}
	svc := NewService(backend)

	o, err := svc.Submit(context.Background(), snapshot())
	require.NoError(t, err)
	assert.Equal(t, "o-2", o.ID)
	assert.Equal(t, "QW-0002", o.OrderNumber)
}

func TestSubmitEmptyCart(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend)

	_, err := svc.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, backend.createReq)
}

func TestSubmitFailureIsRecoverable(t *testing.T) {
	backend := &mockBackend{createErr: errors.New("connection reset")}
	svc := NewService(backend)

	_, err := svc.Submit(context.Background(), snapshot())
	require.Error(t, err)

	// the same snapshot can be retried
	backend.mu.Lock()
	backend.createErr = nil
	backend.createResp = &api.CreateOrderResponse{Order: domain.Order{ID: "o-3", Status: domain.OrderStatusPending}}
	backend.mu.Unlock()

	o, err := svc.Submit(context.Background(), snapshot())
	require.NoError(t, err)
	assert.Equal(t, "o-3", o.ID)
}

func TestCancelRejectedLocallyForTerminalStatus(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend)

	for _, status := range []domain.OrderStatus{domain.OrderStatusCompleted, domain.OrderStatusCancelled} {
		o := &domain.Order{ID: "o-1", Status: status}
		err := svc.Cancel(context.Background(), o)
		assert.ErrorIs(t, err, ErrNotCancellable)
		assert.Equal(t, status, o.Status)
	}

	_, updates := backend.calls()
	assert.Equal(t, 0, updates, "terminal cancel must not reach the network")
}

func TestCancelSuccessFlipsLocalStatus(t *testing.T) {
	backend := &mockBackend{}
	svc := NewService(backend)

	o := &domain.Order{ID: "o-1", Status: domain.OrderStatusPreparing}
	require.NoError(t, svc.Cancel(context.Background(), o))
	assert.Equal(t, domain.OrderStatusCancelled, o.Status)
}

func TestCancelFailureLeavesStatusUnchanged(t *testing.T) {
	backend := &mockBackend{updateErr: &api.Error{StatusCode: http.StatusBadRequest, Message: "trop tard"}}
	svc := NewService(backend)

	o := &domain.Order{ID: "o-1", Status: domain.OrderStatusReady}
	err := svc.Cancel(context.Background(), o)
	require.Error(t, err)
	assert.Equal(t, domain.OrderStatusReady, o.Status)
}

func TestCancelFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"400 with server reason", &api.Error{StatusCode: 400, Message: "Commande déjà en préparation"}, "Commande déjà en préparation"},
		{"400 without reason", &api.Error{StatusCode: 400}, "Cette commande ne peut pas être annulée"},
		{"403", &api.Error{StatusCode: 403, Message: "nope"}, "Vous n'avez pas la permission d'annuler cette commande"},
		{"404", &api.Error{StatusCode: 404}, "Commande introuvable"},
		{"500", &api.Error{StatusCode: 500}, "Erreur lors de l'annulation"},
		{"transport failure", errors.New("timeout"), "Erreur lors de l'annulation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CancelFailureMessage(tt.err))
		})
	}
}

func TestRefreshReturnsLatestOrder(t *testing.T) {
	backend := &mockBackend{order: &domain.Order{ID: "o-1", Status: domain.OrderStatusPreparing}}
	svc := NewService(backend)

	o, err := svc.Refresh(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, o.Status)
}

func TestRefreshBreakerOpensAfterRepeatedFailures(t *testing.T) {
	backend := &mockBackend{getErr: errors.New("backend down")}
	svc := NewService(backend)

	// gobreaker trips after more than five consecutive failures
	for i := 0; i < 6; i++ {
		_, err := svc.Refresh(context.Background(), "o-1")
		require.Error(t, err)
	}
	gets, _ := backend.calls()
	require.Equal(t, 6, gets)

	_, err := svc.Refresh(context.Background(), "o-1")
	require.Error(t, err)
	gets, _ = backend.calls()
	assert.Equal(t, 6, gets, "open breaker must fail fast without a request")
}

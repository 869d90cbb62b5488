// Package stub is an in-process double of the hosted Qualiwo backend,
// honoring the client's wire contract. It backs local development and the
// client's integration tests; it is not a production service.
package stub

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/MuriellekPINSO/qualiwo-go/internal/api"
	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type Server struct {
	store       OrderStore
	status      StatusSource
	checkoutURL string // base for hosted checkout pages
	catalog     []domain.Product

	mu       sync.Mutex
	payments map[string]*paymentRecord
	orderSeq int
}

func NewServer(store OrderStore, status StatusSource, checkoutURL string) *Server {
	return &Server{
		store:       store,
		status:      status,
		checkoutURL: checkoutURL,
		catalog:     SeedCatalog(40),
		payments:    make(map[string]*paymentRecord),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/orders/create", s.createOrder)
	r.Get("/orders/{id}", s.getOrder)
	r.Patch("/orders/{id}/status", s.updateOrderStatus)

	r.Post("/payments/create", s.createPayment)
	r.Get("/payments/status/{transaction_id}", s.paymentStatus)

	r.Post("/chat", s.chat)

	return r
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req api.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "corps de requête invalide")
		return
	}
	if len(req.CartItems) == 0 {
		respondError(w, http.StatusBadRequest, "le panier est vide")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	order := domain.Order{
		ID:          uuid.NewString(),
		OrderNumber: s.nextOrderNumber(),
		Total:       float64(req.TotalAmount),
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, item := range req.CartItems {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     float64(item.Price),
			Product:   &domain.ProductInfo{Name: item.ProductName},
		})
	}

	if err := s.store.Put(r.Context(), &order); err != nil {
		log.Printf("stub: store order failed: %v", err)
		respondError(w, http.StatusInternalServerError, "échec de l'enregistrement de la commande")
		return
	}

	respondJSON(w, http.StatusCreated, api.CreateOrderResponse{
		Success:     true,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Order:       order,
		Items:       order.Items,
		Message:     "Commande créée",
	})
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Commande introuvable")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "corps de requête invalide")
		return
	}
	if req.Status != domain.OrderStatusCancelled {
		// Clients may only cancel; every other transition belongs to the shop.
		respondError(w, http.StatusForbidden, "transition non autorisée")
		return
	}

	order, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Commande introuvable")
		return
	}
	if order.Status.IsTerminal() {
		respondError(w, http.StatusBadRequest, "Cette commande est déjà terminée")
		return
	}

	order.Status = domain.OrderStatusCancelled
	order.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.store.Put(r.Context(), order); err != nil {
		log.Printf("stub: update order failed: %v", err)
		respondError(w, http.StatusInternalServerError, "échec de la mise à jour")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Commande annulée"})
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "corps de requête invalide")
		return
	}
	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "montant invalide")
		return
	}
	if _, err := s.store.Get(r.Context(), req.OrderID); err != nil {
		respondError(w, http.StatusNotFound, "Commande introuvable")
		return
	}

	record := &paymentRecord{
		TransactionID: "TXN-" + uuid.NewString(),
		OrderID:       req.OrderID,
		PhoneNumber:   req.PhoneNumber,
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Amount:        req.Amount,
		Reference:     uuid.NewString(),
	}
	s.mu.Lock()
	s.payments[record.TransactionID] = record
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, api.CreatePaymentResponse{
		PaymentToken:  uuid.NewString(),
		TransactionID: record.TransactionID,
		CheckoutURL:   fmt.Sprintf("%s/checkout/%s", s.checkoutURL, record.TransactionID),
	})
}

func (s *Server) paymentStatus(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transaction_id")
	s.mu.Lock()
	record, ok := s.payments[txID]
	s.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, "transaction introuvable")
		return
	}

	respondJSON(w, http.StatusOK, api.PaymentStatusResponse{
		ID:        record.TransactionID,
		Status:    s.status.Next(txID).String(),
		Amount:    record.Amount,
		Mode:      "mobile_money",
		Reference: record.Reference,
		Customer: &api.Person{
			Firstname:   record.Firstname,
			Lastname:    record.Lastname,
			PhoneNumber: record.PhoneNumber,
		},
	})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "corps de requête invalide")
		return
	}

	var query string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			query = req.Messages[i].Content
			break
		}
	}

	products := searchCatalog(s.catalog, query)
	respondJSON(w, http.StatusOK, api.ChatResponse{
		Response: chatReply(products),
		Products: products,
		Messages: req.Messages,
	})
}

func (s *Server) nextOrderNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderSeq++
	return fmt.Sprintf("QW-%04d", s.orderSeq)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

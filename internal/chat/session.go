// Package chat holds the conversation state of the main screen: the
// message log, the single in-chat cart widget, and the order widgets
// appended when a cart becomes an order.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/MuriellekPINSO/qualiwo-go/internal/api"
	"github.com/MuriellekPINSO/qualiwo-go/internal/cart"
	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/MuriellekPINSO/qualiwo-go/internal/order"
)

type MessageKind string

const (
	KindText     MessageKind = "text"
	KindProducts MessageKind = "products"
	KindCart     MessageKind = "cart"
	KindOrder    MessageKind = "order"
)

type Message struct {
	Kind      MessageKind
	Content   string
	FromUser  bool
	Timestamp time.Time
	Products  []domain.Product
	CartLines []cart.Line
	Order     *domain.Order
}

const sendFailureText = "Désolé, une erreur est survenue. Veuillez réessayer."

// Chatter is the slice of the API client this package consumes.
type Chatter interface {
	Chat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error)
}

// Session is the view-state of one conversation. Single-session access.
type Session struct {
	client   Chatter
	cart     *cart.Cart
	messages []Message
	now      func() time.Time
}

func NewSession(client Chatter, c *cart.Cart) *Session {
	return &Session{
		client: client,
		cart:   c,
		now:    time.Now,
	}
}

func (s *Session) Cart() *cart.Cart    { return s.cart }
func (s *Session) Messages() []Message { return s.messages }

// Send posts the user's text plus the whole conversation history to the
// backend. A failed turn surfaces as an error bubble in the log, never as
// a hard error to the caller.
func (s *Session) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.messages = append(s.messages, Message{
		Kind:      KindText,
		Content:   text,
		FromUser:  true,
		Timestamp: s.now(),
	})

	req := &api.ChatRequest{}
	for _, m := range s.messages {
		role := "assistant"
		if m.FromUser {
			role = "user"
		}
		req.Messages = append(req.Messages, api.ChatMessage{Role: role, Content: m.Content})
	}

	resp, err := s.client.Chat(ctx, req)
	if err != nil {
		s.messages = append(s.messages, Message{
			Kind:      KindText,
			Content:   sendFailureText,
			Timestamp: s.now(),
		})
		return
	}

	reply := Message{
		Kind:      KindText,
		Content:   resp.Response,
		Timestamp: s.now(),
	}
	if len(resp.Products) > 0 {
		reply.Kind = KindProducts
		reply.Content = CleanResponseText(resp.Response)
		reply.Products = resp.Products
	}
	s.messages = append(s.messages, reply)
}

// SyncCartWidget keeps the single in-chat cart widget consistent with the
// cart: updated in place while the cart has lines, removed once it empties.
func (s *Session) SyncCartWidget() {
	if s.cart.IsEmpty() {
		s.removeCartWidget()
		return
	}

	widget := Message{
		Kind:      KindCart,
		Timestamp: s.now(),
		CartLines: s.cart.Snapshot(),
	}
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Kind == KindCart {
			s.messages[i] = widget
			return
		}
	}
	s.messages = append(s.messages, widget)
}

// ShowOrder appends an order-tracking widget to the conversation.
func (s *Session) ShowOrder(o *domain.Order) {
	s.messages = append(s.messages, Message{
		Kind:      KindOrder,
		Timestamp: s.now(),
		Order:     o,
	})
}

// SubmitCart turns the current cart into a remote order. On success the
// cart is cleared, its widget removed, and an order widget appended. On
// failure everything stays as it was so the user can retry.
func (s *Session) SubmitCart(ctx context.Context, orders *order.Service) (*domain.Order, error) {
	o, err := orders.Submit(ctx, s.cart.Snapshot())
	if err != nil {
		return nil, err
	}
	s.cart.Clear()
	s.removeCartWidget()
	s.ShowOrder(o)
	return o, nil
}

// removeCartWidget builds a fresh slice so slices previously returned by
// Messages keep their contents.
func (s *Session) removeCartWidget() {
	kept := make([]Message, 0, len(s.messages))
	for _, m := range s.messages {
		if m.Kind != KindCart {
			kept = append(kept, m)
		}
	}
	s.messages = kept
}

// CleanResponseText strips product-listing lines ("- ...", "* ...",
// "1. ...", "1) ...") out of a bot reply that arrives with structured
// products attached, so the same items are not shown twice. When nothing
// survives, a stock introduction line is used instead.
func CleanResponseText(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > 2 && (strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*")) {
			continue
		}
		if len(trimmed) > 2 && trimmed[0] >= '0' && trimmed[0] <= '9' &&
			(trimmed[1] == '.' || trimmed[1] == ')') {
			continue
		}
		kept = append(kept, line)
	}

	cleaned := strings.TrimSpace(strings.Join(kept, "\n"))
	if cleaned == "" {
		return "Voici les produits qui pourraient vous intéresser :"
	}
	return cleaned
}

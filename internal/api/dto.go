package api

import "github.com/MuriellekPINSO/qualiwo-go/internal/domain"

type CartItemDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type CreateOrderRequest struct {
	CartItems   []CartItemDTO `json:"cart_items"`
	TotalAmount int64         `json:"total_amount"`
}

type CreateOrderResponse struct {
	Success     bool               `json:"success"`
	OrderID     string             `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	Order       domain.Order       `json:"order"`
	Items       []domain.OrderItem `json:"items,omitempty"`
	Message     string             `json:"message"`
}

type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type CreatePaymentRequest struct {
	OrderID     string `json:"order_id"`
	PhoneNumber string `json:"phone_number"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	CallbackURL string `json:"callback_url"`
	Amount      int64  `json:"amount"`
}

type CreatePaymentResponse struct {
	PaymentToken  string `json:"payment_token"`
	TransactionID string `json:"transaction_id"`
	CheckoutURL   string `json:"checkout_url"`
}

type PaymentStatusResponse struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	Amount    int64   `json:"amount,omitempty"`
	Mode      string  `json:"mode,omitempty"`
	Reference string  `json:"reference,omitempty"`
	Customer  *Person `json:"customer,omitempty"`
}

type Person struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Response string           `json:"response"`
	Products []domain.Product `json:"products,omitempty"`
	Messages []ChatMessage    `json:"messages,omitempty"`
}

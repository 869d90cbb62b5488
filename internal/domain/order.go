package domain

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transition is expected.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// StepIndex maps a status onto the tracking timeline
// (pending=0, preparing=1, ready=2, completed=3). Unknown
// statuses render as the first step, like the source app does.
func (s OrderStatus) StepIndex() int {
	switch s {
	case OrderStatusPreparing:
		return 1
	case OrderStatusReady:
		return 2
	case OrderStatusCompleted:
		return 3
	default:
		return 0
	}
}

// Label is the user-facing badge text for a status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "EN ATTENTE"
	case OrderStatusPreparing:
		return "EN PRÉPARATION"
	case OrderStatusReady:
		return "PRÊT"
	case OrderStatusCompleted:
		return "TERMINÉ"
	case OrderStatusCancelled:
		return "ANNULÉ"
	default:
		return string(s)
	}
}

func (s OrderStatus) String() string {
	return string(s)
}

// Order is the client's read-mostly copy of a remote order, refreshed by
// polling. The backend is the only source of status transitions.
//
// Total crosses the wire as a JSON number that some backend variants emit
// with a fractional part; amounts are whole CFA in practice, use Amount.
type Order struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"order_number"`
	Total       float64     `json:"total"`
	Status      OrderStatus `json:"status"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"last_updated_at"`
	Items       []OrderItem `json:"items,omitempty"`
}

// Amount is the order total in whole CFA.
func (o *Order) Amount() int64 {
	return int64(o.Total)
}

type OrderItem struct {
	ID        string       `json:"id,omitempty"`
	ProductID string       `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Price     float64      `json:"price"`
	Product   *ProductInfo `json:"products,omitempty"`
}

type ProductInfo struct {
	Name string `json:"name"`
}

package stub

import (
	"math/rand"

	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
)

// StatusSource decides what a payment status poll reports. The random
// source approximates a real mobile-money processor; tests plug in a
// fixed one.
type StatusSource interface {
	Next(transactionID string) domain.PaymentStatus
}

type RandomStatus struct{}

func (RandomStatus) Next(string) domain.PaymentStatus {
	return calcStatus(rand.Intn(100))
}

func calcStatus(n int) domain.PaymentStatus {
	switch {
	case n < 70:
		return domain.PaymentStatusApproved
	case n < 85:
		return domain.PaymentStatusPending
	case n < 95:
		return domain.PaymentStatusDeclined
	default:
		return domain.PaymentStatusCancelled
	}
}

type FixedStatus struct {
	Status domain.PaymentStatus
}

func (f FixedStatus) Next(string) domain.PaymentStatus {
	return f.Status
}

type paymentRecord struct {
	TransactionID string
	OrderID       string
	PhoneNumber   string
	Firstname     string
	Lastname      string
	Amount        int64
	Reference     string
}

package domain

type PaymentStatus string

const (
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusDeclined  PaymentStatus = "declined"
)

// NormalizePaymentStatus folds wire-level spelling variants ("canceled")
// into the canonical enum. Unrecognized values pass through untouched so
// the UI can show them verbatim.
func NormalizePaymentStatus(raw string) PaymentStatus {
	if raw == "canceled" {
		return PaymentStatusCancelled
	}
	return PaymentStatus(raw)
}

func (s PaymentStatus) String() string {
	return string(s)
}

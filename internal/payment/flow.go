// Package payment drives the multi-step payment flow bound to one order:
// method selection, the mobile-money form with its external checkout
// handoff, and outcome reconciliation via user-triggered status checks.
// The flow never mutates cart or order state; a successful payment is
// reported upward through the completion callback.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MuriellekPINSO/qualiwo-go/internal/api"
	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
)

type Step string

const (
	StepMethodSelection Step = "method_selection"
	StepMobileMoney     Step = "mobile_money"
	StepSuccess         Step = "success"
	StepDismissed       Step = "dismissed"
)

const (
	MethodCounter     = "counter"
	MethodMobileMoney = "mobile_money"
)

var ErrInvalidForm = errors.New("payment form is invalid")

// Processor is the slice of the API client the flow consumes.
type Processor interface {
	CreatePayment(ctx context.Context, req *api.CreatePaymentRequest) (*api.CreatePaymentResponse, error)
	PaymentStatus(ctx context.Context, transactionID string) (*api.PaymentStatusResponse, error)
}

// Flow is the controller for one payment attempt against one order.
// Single-session access, like the screens that own it.
type Flow struct {
	processor   Processor
	order       *domain.Order // read-only
	callbackURL string
	onComplete  func(method string)

	step      Step
	method    string
	form      Form
	attempted bool

	waiting       bool // initiated, awaiting external confirmation
	transactionID string
	checkoutURL   string
}

func NewFlow(processor Processor, order *domain.Order, callbackURL string, onComplete func(method string)) *Flow {
	return &Flow{
		processor:   processor,
		order:       order,
		callbackURL: callbackURL,
		onComplete:  onComplete,
		step:        StepMethodSelection,
	}
}

func (f *Flow) Step() Step            { return f.step }
func (f *Flow) Method() string        { return f.method }
func (f *Flow) Waiting() bool         { return f.waiting }
func (f *Flow) TransactionID() string { return f.transactionID }
func (f *Flow) CheckoutURL() string   { return f.checkoutURL }

// SelectCounter defers the real payment to an in-person transaction and
// completes the flow immediately, no remote call.
func (f *Flow) SelectCounter() {
	f.method = MethodCounter
	f.complete()
}

func (f *Flow) SelectMobileMoney() {
	f.method = MethodMobileMoney
	f.step = StepMobileMoney
}

// Back returns from the form to method selection. The typed form survives.
func (f *Flow) Back() {
	if f.step == StepMobileMoney {
		f.step = StepMethodSelection
	}
}

// Dismiss exits the flow from any step and discards the session.
func (f *Flow) Dismiss() {
	f.step = StepDismissed
	f.waiting = false
	f.transactionID = ""
	f.checkoutURL = ""
}

func (f *Flow) SetFullName(name string)   { f.form.FullName = name }
func (f *Flow) SetPhoneNumber(num string) { f.form.PhoneNumber = num }

// FieldErrors returns the field-scoped validation messages. Empty strings
// mean valid; nothing is reported before the first submit attempt.
func (f *Flow) FieldErrors() (nameErr, phoneErr string) {
	if !f.attempted {
		return "", ""
	}
	if !f.form.NameValid() {
		nameErr = nameErrorText
	}
	if !f.form.PhoneValid() {
		phoneErr = phoneErrorText
	}
	return nameErr, phoneErr
}

// Initiate validates the form, then asks the processor to create the
// payment. On success the flow enters the waiting sub-state and exposes
// the hosted checkout URL. On failure the flow stays on the form so the
// user can retry.
func (f *Flow) Initiate(ctx context.Context) error {
	f.attempted = true
	if !f.form.Valid() {
		return ErrInvalidForm
	}

	firstname, lastname := f.form.SplitName()
	resp, err := f.processor.CreatePayment(ctx, &api.CreatePaymentRequest{
		OrderID:     f.order.ID,
		PhoneNumber: f.form.NormalizedPhone(),
		Firstname:   firstname,
		Lastname:    lastname,
		CallbackURL: f.callbackURL,
		Amount:      f.order.Amount(),
	})
	if err != nil {
		return fmt.Errorf("initiate payment failed: %w", err)
	}

	f.transactionID = resp.TransactionID
	f.checkoutURL = resp.CheckoutURL
	f.waiting = true
	return nil
}

// InitiateFailureMessage prefers the processor's own explanation.
func InitiateFailureMessage(err error) string {
	if msg := api.MessageOf(err); msg != "" {
		return msg
	}
	return "Le paiement n'a pas pu être initié. Veuillez réessayer."
}

// Outcome is one observed processor status plus the message to show.
type Outcome struct {
	Status  domain.PaymentStatus
	Message string
}

// CheckStatus polls the processor once. It is user-triggered (reopening
// the form after the checkout surface closes, or a "verify" action),
// never run on a timer.
func (f *Flow) CheckStatus(ctx context.Context) (*Outcome, error) {
	resp, err := f.processor.PaymentStatus(ctx, f.transactionID)
	if err != nil {
		return nil, fmt.Errorf("check payment status failed: %w", err)
	}

	status := domain.NormalizePaymentStatus(resp.Status)
	switch status {
	case domain.PaymentStatusApproved:
		f.complete()
		return &Outcome{Status: status, Message: "Paiement réussi !"}, nil
	case domain.PaymentStatusPending:
		return &Outcome{Status: status, Message: "Paiement en attente. Veuillez confirmer sur votre téléphone."}, nil
	case domain.PaymentStatusCancelled:
		f.resetAttempt()
		return &Outcome{Status: status, Message: "Paiement annulé. Vous pouvez réessayer."}, nil
	case domain.PaymentStatusDeclined:
		f.resetAttempt()
		return &Outcome{Status: status, Message: "Paiement refusé. Vous pouvez réessayer."}, nil
	default:
		return &Outcome{Status: status, Message: fmt.Sprintf("Statut de paiement inconnu : %s", resp.Status)}, nil
	}
}

// HandleNavigation watches the checkout surface's navigations. When the
// callback URL shows up the surface should be closed and the status
// checked immediately, exactly as if the user had pressed "verify".
func (f *Flow) HandleNavigation(ctx context.Context, url string) (*Outcome, bool, error) {
	if f.callbackURL == "" || !strings.Contains(url, f.callbackURL) {
		return nil, false, nil
	}
	outcome, err := f.CheckStatus(ctx)
	return outcome, true, err
}

func (f *Flow) complete() {
	f.waiting = false
	f.step = StepSuccess
	if f.onComplete != nil {
		f.onComplete(f.method)
	}
}

// resetAttempt clears the waiting sub-state and the stored transaction so
// the user can restart payment from scratch.
func (f *Flow) resetAttempt() {
	f.waiting = false
	f.transactionID = ""
	f.checkoutURL = ""
}

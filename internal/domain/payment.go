package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusRejected  PaymentStatus = "rejected"
)

// paymentTransitions lists the statuses an admin decision may move a
// payment into from each status. Confirmed and rejected are terminal.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusConfirmed, PaymentStatusRejected},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Refundable reports whether an approved refund request may still mint a
// refund transaction against a payment in this status.
func (s PaymentStatus) Refundable() bool {
	return s == PaymentStatusConfirmed || s == PaymentStatusPending
}

type Payment struct {
	ID            int
	UserID        int
	CheckoutID    int
	AccountNumber string
	Amount        decimal.Decimal
	Evidence      *string
	Status        PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentWithTransaction is a payment together with its payment-type
// transaction, if one exists.
type PaymentWithTransaction struct {
	Payment
	Transaction *Transaction
}

// PaymentSubmission is what a buyer sends when paying a checkout by bank transfer.
type PaymentSubmission struct {
	UserID        int
	CheckoutID    int
	AccountNumber string
	Amount        decimal.Decimal
}

// PaymentDecision is the result of an admin confirming or rejecting a payment.
type PaymentDecision struct {
	Payment      Payment
	Transaction  Transaction
	ContactEmail string
}

func InvalidPaymentTransition(from, to PaymentStatus) error {
	return fmt.Errorf("%w: payment is already %s and cannot become %s", ErrInvalidPaymentStatus, from, to)
}

type PaymentRepository interface {
	// Submit creates the payment, its completed payment transaction and
	// clears the buyer's cart lines for the checkout items in one unit.
	Submit(ctx context.Context, submission PaymentSubmission) (*Payment, *Transaction, error)
	GetById(ctx context.Context, id int) (*Payment, error)
	// Decide moves a pending payment to confirmed or rejected and sets the
	// companion transaction status accordingly.
	Decide(ctx context.Context, id int, status PaymentStatus) (*PaymentDecision, error)
	// ReplaceEvidence stores a new evidence reference and returns the
	// previous one, if any.
	ReplaceEvidence(ctx context.Context, id int, evidence string) (previous *string, err error)
	GetAllWithTransactions(ctx context.Context, pagination Pagination) ([]PaymentWithTransaction, *Metadata, error)
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

type TransactionType string

const (
	TransactionTypePayment TransactionType = "payment"
	TransactionTypeRefund  TransactionType = "refund"
)

type Transaction struct {
	ID         int
	PaymentID  int
	UserID     int
	CheckoutID *int
	Amount     decimal.Decimal
	Status     TransactionStatus
	Type       TransactionType
	CreatedAt  time.Time
}

// TransactionStatusFor maps an admin payment decision onto the ledger
// status of the payment's transaction.
func TransactionStatusFor(status PaymentStatus) TransactionStatus {
	switch status {
	case PaymentStatusConfirmed:
		return TransactionStatusCompleted
	case PaymentStatusRejected:
		return TransactionStatusFailed
	default:
		return TransactionStatusPending
	}
}

// RefundSource names the path through which a refund was issued.
type RefundSource string

const (
	RefundSourceRequest RefundSource = "request"
	RefundSourceDirect  RefundSource = "direct"
)

// IssuedRefund is the outcome of a refund issuance: the new refund
// transaction and the original payment transaction after it was marked
// refunded.
type IssuedRefund struct {
	Refund       Transaction
	Original     Transaction
	ContactEmail string
}

type TransactionRepository interface {
	GetById(ctx context.Context, id int) (*Transaction, error)
	GetAll(ctx context.Context) ([]Transaction, error)
	GetPage(ctx context.Context, pagination Pagination) ([]Transaction, *Metadata, error)
	GetPageByUserId(ctx context.Context, userId int, pagination Pagination) ([]Transaction, *Metadata, error)
	// IssueRefund refunds a confirmed payment directly, without a refund request.
	IssueRefund(ctx context.Context, paymentId int) (*IssuedRefund, error)
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventPaymentSubmitted = "payment.submitted"
	EventPaymentConfirmed = "payment.confirmed"
	EventPaymentRejected  = "payment.rejected"
	EventRefundRequested  = "refund.requested"
	EventRefundIssued     = "refund.issued"
	EventRefundRejected   = "refund.rejected"
)

type Event struct {
	Type          string          `json:"eventType"`
	PaymentID     int             `json:"paymentId,omitempty"`
	TransactionID int             `json:"transactionId,omitempty"`
	RequestID     int             `json:"refundRequestId,omitempty"`
	UserID        int             `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	Source        RefundSource    `json:"source,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

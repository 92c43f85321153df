package domain

import "errors"

var (
	ErrRecordNotFound           = errors.New("record not found")
	ErrCheckoutNotFound         = errors.New("checkout not found")
	ErrAmountMismatch           = errors.New("payment amount must equal the checkout total")
	ErrCheckoutAlreadyPaid      = errors.New("checkout already has a pending or confirmed payment")
	ErrInvalidPaymentStatus     = errors.New("payment status does not allow this operation")
	ErrPaymentNotConfirmed      = errors.New("cannot refund unconfirmed payment")
	ErrPaymentAlreadyRefunded   = errors.New("payment has already been refunded")
	ErrTransactionNotRefundable = errors.New("only completed transactions are refundable")
	ErrDuplicatePendingRefund   = errors.New("a pending refund request already exists for this transaction")
	ErrRefundAlreadyProcessed   = errors.New("refund request has already been processed")
	ErrRefundNotDeletable       = errors.New("can only delete pending refund requests")
	ErrIdempotencyKeyInFlight   = errors.New("a request with this idempotency key is still being processed")
)

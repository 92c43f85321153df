package domain

import (
	"context"
	"time"
)

type RefundRequestStatus string

const (
	RefundRequestStatusPending  RefundRequestStatus = "pending"
	RefundRequestStatusApproved RefundRequestStatus = "approved"
	RefundRequestStatusRejected RefundRequestStatus = "rejected"
)

type RefundAction string

const (
	RefundActionApprove RefundAction = "approve"
	RefundActionReject  RefundAction = "reject"
)

func (a RefundAction) ResultingStatus() RefundRequestStatus {
	if a == RefundActionApprove {
		return RefundRequestStatusApproved
	}

	return RefundRequestStatusRejected
}

type RefundRequest struct {
	ID            int
	TransactionID int
	UserID        int
	Reason        string
	Status        RefundRequestStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RefundRequestDetail is a refund request with the transaction it targets.
type RefundRequestDetail struct {
	RefundRequest
	Transaction Transaction
}

// RefundDecision is the result of an admin handling a refund request.
// Refund is nil unless the request was approved and a refund transaction
// was issued. RefundErr carries a refusal to issue that happened after the
// approval itself was persisted.
type RefundDecision struct {
	Request      RefundRequest
	Refund       *IssuedRefund
	RefundErr    error
	ContactEmail string
}

type RefundRequestRepository interface {
	// Create inserts a pending request for a completed transaction. The
	// one-pending-request-per-transaction rule is enforced by the store.
	Create(ctx context.Context, request *RefundRequest) error
	GetById(ctx context.Context, id int) (*RefundRequest, error)
	GetAll(ctx context.Context) ([]RefundRequestDetail, error)
	// Handle moves a pending request to approved or rejected. On approval
	// it issues the refund in the same unit.
	Handle(ctx context.Context, id int, action RefundAction) (*RefundDecision, error)
	DeletePending(ctx context.Context, id int) error
}

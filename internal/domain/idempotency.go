package domain

import "context"

// IdempotencyStore remembers which payment a client-supplied idempotency
// key produced.
type IdempotencyStore interface {
	// Reserve claims key for the user. It returns zero if the key was free,
	// the recorded payment id if an earlier request with the key succeeded,
	// and ErrIdempotencyKeyInFlight if that request has not finished yet.
	Reserve(ctx context.Context, userId int, key string) (paymentId int, err error)
	Complete(ctx context.Context, userId int, key string, paymentId int) error
	Release(ctx context.Context, userId int, key string) error
}

package domain

import (
	"context"
	"io"
)

// EvidenceStore keeps uploaded proof-of-transfer files. References returned
// by Put are opaque to the rest of the system.
type EvidenceStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, ref string) error
}

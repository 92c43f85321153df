package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Reserve(ctx context.Context, userId int, key string) (int, error) {
	args := m.Called(ctx, userId, key)
	return args.Int(0), args.Error(1)
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, userId int, key string, paymentId int) error {
	args := m.Called(ctx, userId, key, paymentId)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, userId int, key string) error {
	args := m.Called(ctx, userId, key)
	return args.Error(0)
}

type MockEvidenceStore struct {
	mock.Mock
}

func (m *MockEvidenceStore) Put(
	ctx context.Context,
	key string,
	contentType string,
	body io.Reader,
	size int64) (string, error) {

	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

func (m *MockEvidenceStore) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// RecordingPublisher keeps every published event in memory.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	Err    error
}

func (p *RecordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	if p.Err != nil {
		return p.Err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of the events published so far.
func (p *RecordingPublisher) Events() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	events := make([]domain.Event, len(p.events))
	copy(events, p.events)
	return events
}

func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = nil
}

func (p *RecordingPublisher) Close() error {
	return nil
}

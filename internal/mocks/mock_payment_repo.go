package mocks

import (
	"context"

	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepo struct {
	mock.Mock
	domain.PaymentRepository
}

func (m *MockPaymentRepo) Submit(
	ctx context.Context,
	submission domain.PaymentSubmission) (*domain.Payment, *domain.Transaction, error) {

	args := m.Called(ctx, submission)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Get(1).(*domain.Transaction), args.Error(2)
}

func (m *MockPaymentRepo) GetById(ctx context.Context, id int) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) Decide(ctx context.Context, id int, status domain.PaymentStatus) (*domain.PaymentDecision, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDecision), args.Error(1)
}

func (m *MockPaymentRepo) ReplaceEvidence(ctx context.Context, id int, evidence string) (*string, error) {
	args := m.Called(ctx, id, evidence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockPaymentRepo) GetAllWithTransactions(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.PaymentWithTransaction, *domain.Metadata, error) {

	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.PaymentWithTransaction), args.Get(1).(*domain.Metadata), args.Error(2)
}

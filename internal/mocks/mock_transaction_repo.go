package mocks

import (
	"context"

	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTransactionRepo struct {
	mock.Mock
	domain.TransactionRepository
}

func (m *MockTransactionRepo) GetById(ctx context.Context, id int) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) GetPage(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Transaction, *domain.Metadata, error) {

	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockTransactionRepo) GetPageByUserId(
	ctx context.Context,
	userId int,
	pagination domain.Pagination) ([]domain.Transaction, *domain.Metadata, error) {

	args := m.Called(ctx, userId, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockTransactionRepo) IssueRefund(ctx context.Context, paymentId int) (*domain.IssuedRefund, error) {
	args := m.Called(ctx, paymentId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedRefund), args.Error(1)
}

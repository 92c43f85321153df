package mocks

import (
	"context"

	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockRefundRequestRepo struct {
	mock.Mock
	domain.RefundRequestRepository
}

func (m *MockRefundRequestRepo) Create(ctx context.Context, request *domain.RefundRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRefundRequestRepo) GetById(ctx context.Context, id int) (*domain.RefundRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundRequest), args.Error(1)
}

func (m *MockRefundRequestRepo) GetAll(ctx context.Context) ([]domain.RefundRequestDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RefundRequestDetail), args.Error(1)
}

func (m *MockRefundRequestRepo) Handle(
	ctx context.Context,
	id int,
	action domain.RefundAction) (*domain.RefundDecision, error) {

	args := m.Called(ctx, id, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundDecision), args.Error(1)
}

func (m *MockRefundRequestRepo) DeletePending(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

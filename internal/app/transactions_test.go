package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/fitgain-payments/api"
	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/metinatakli/fitgain-payments/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	suite.Suite
	app             *Application
	transactionRepo *mocks.MockTransactionRepo
}

func (s *TransactionTestSuite) SetupTest() {
	s.transactionRepo = new(mocks.MockTransactionRepo)

	s.app = newTestApplication(func(a *Application) {
		a.transactionRepo = s.transactionRepo
	})
}

func TestTransactionSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) TestListMyTransactions() {
	tests := []struct {
		name           string
		query          string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.TransactionListResponse
	}{
		{
			name:           "should reject page zero",
			query:          "?page=0",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 1",
		},
		{
			name:  "should list only the caller's transactions",
			query: "?page=2&pageSize=1",
			setupMocks: func() {
				s.transactionRepo.On("GetPageByUserId", mock.Anything, testUserId, domain.Pagination{Page: 2, PageSize: 1}).
					Return([]domain.Transaction{*testTransaction(domain.TransactionStatusCompleted)}, domain.NewMetadata(3, 2, 1), nil).Once()
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.TransactionListResponse{
				Transactions: []api.Transaction{
					{
						Id:         21,
						PaymentId:  15,
						UserId:     testUserId,
						CheckoutId: ptr(3),
						Amount:     decimal.RequireFromString("1000"),
						Status:     api.TransactionStatusCompleted,
						Type:       api.TransactionTypePayment,
						CreatedAt:  testCreatedAt,
					},
				},
				Metadata: api.Metadata{
					CurrentPage:  2,
					FirstPage:    1,
					LastPage:     3,
					PageSize:     1,
					TotalRecords: 3,
				},
			},
		},
		{
			name: "should fail on repository errors",
			setupMocks: func() {
				s.transactionRepo.On("GetPageByUserId", mock.Anything, testUserId, domain.Pagination{Page: 1, PageSize: 20}).
					Return(nil, nil, fmt.Errorf("boom")).Once()
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			defer s.transactionRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/users/me/transactions"+tt.query, nil)
			r = authorize(s.T(), r, testUserId, false)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.TransactionListResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")

				if diff := cmp.Diff(tt.wantResponse, &response, decimalComparer); diff != "" {
					s.T().Errorf("Mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *TransactionTestSuite) TestListTransactionsRequiresAdmin() {
	w, r := executeRequest(s.T(), http.MethodGet, "/admin/transactions", nil)
	r = authorize(s.T(), r, testUserId, false)

	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusForbidden, w.Code)
	s.transactionRepo.AssertNotCalled(s.T(), "GetPage", mock.Anything, mock.Anything)
}

func (s *TransactionTestSuite) TestListTransactions() {
	s.transactionRepo.On("GetPage", mock.Anything, domain.Pagination{Page: 1, PageSize: 20}).
		Return([]domain.Transaction{}, domain.NewMetadata(0, 1, 20), nil).Once()
	defer s.transactionRepo.AssertExpectations(s.T())

	w, r := executeRequest(s.T(), http.MethodGet, "/admin/transactions", nil)
	r = authorize(s.T(), r, testAdminId, true)

	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusOK, w.Code)

	var response api.TransactionListResponse
	err := json.NewDecoder(w.Body).Decode(&response)
	s.Require().NoError(err, "Failed to decode response")

	s.NotNil(response.Transactions)
	s.Empty(response.Transactions)
	s.Equal(0, response.Metadata.TotalRecords)
}

func (s *TransactionTestSuite) TestGetTransactionReport() {
	amount := func(v string) decimal.Decimal { return decimal.RequireFromString(v) }

	s.transactionRepo.On("GetAll", mock.Anything).Return([]domain.Transaction{
		{ID: 1, Amount: amount("100"), Type: domain.TransactionTypePayment, Status: domain.TransactionStatusRefunded},
		{ID: 2, Amount: amount("50"), Type: domain.TransactionTypePayment, Status: domain.TransactionStatusCompleted},
		{ID: 3, Amount: amount("50"), Type: domain.TransactionTypeRefund, Status: domain.TransactionStatusRefunded},
	}, nil).Once()
	defer s.transactionRepo.AssertExpectations(s.T())

	w, r := executeRequest(s.T(), http.MethodGet, "/admin/transactions/report", nil)
	r = authorize(s.T(), r, testAdminId, true)

	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusOK, w.Code)

	var response api.TransactionReport
	err := json.NewDecoder(w.Body).Decode(&response)
	s.Require().NoError(err, "Failed to decode response")

	want := api.TransactionReport{
		TotalPayments: 2,
		TotalRefunds:  1,
		TotalAmount:   amount("100"),
		Completed:     1,
		Refunded:      2,
	}

	if diff := cmp.Diff(want, response, decimalComparer); diff != "" {
		s.T().Errorf("Mismatch (-want +got):\n%s", diff)
	}
}

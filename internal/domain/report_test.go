package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTransactionReport(t *testing.T) {
	tests := []struct {
		name         string
		transactions []Transaction
		want         TransactionReport
	}{
		{
			name:         "empty ledger",
			transactions: nil,
			want:         TransactionReport{TotalAmount: decimal.Zero},
		},
		{
			name: "refunds are subtracted from payments",
			transactions: []Transaction{
				{Type: TransactionTypePayment, Status: TransactionStatusCompleted, Amount: decimal.NewFromInt(100)},
				{Type: TransactionTypePayment, Status: TransactionStatusRefunded, Amount: decimal.NewFromInt(50)},
				{Type: TransactionTypeRefund, Status: TransactionStatusRefunded, Amount: decimal.NewFromInt(50)},
			},
			want: TransactionReport{
				TotalPayments: 2,
				TotalRefunds:  1,
				TotalAmount:   decimal.NewFromInt(100),
				Completed:     1,
				Refunded:      2,
			},
		},
		{
			name: "statuses are counted across both types",
			transactions: []Transaction{
				{Type: TransactionTypePayment, Status: TransactionStatusPending, Amount: decimal.RequireFromString("19.99")},
				{Type: TransactionTypePayment, Status: TransactionStatusFailed, Amount: decimal.RequireFromString("5.01")},
			},
			want: TransactionReport{
				TotalPayments: 2,
				TotalAmount:   decimal.NewFromInt(25),
				Pending:       1,
				Failed:        1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTransactionReport(tt.transactions)

			assert.True(t, tt.want.TotalAmount.Equal(got.TotalAmount), "total amount = %s, want %s", got.TotalAmount, tt.want.TotalAmount)

			got.TotalAmount = tt.want.TotalAmount
			assert.Equal(t, tt.want, got)
		})
	}
}

package domain

import "github.com/shopspring/decimal"

type TransactionReport struct {
	TotalPayments int
	TotalRefunds  int
	TotalAmount   decimal.Decimal
	Pending       int
	Completed     int
	Failed        int
	Refunded      int
}

// NewTransactionReport aggregates transactions into counts per type and
// status. TotalAmount is payments minus refunds.
func NewTransactionReport(transactions []Transaction) TransactionReport {
	report := TransactionReport{TotalAmount: decimal.Zero}

	for _, t := range transactions {
		switch t.Type {
		case TransactionTypePayment:
			report.TotalPayments++
			report.TotalAmount = report.TotalAmount.Add(t.Amount)
		case TransactionTypeRefund:
			report.TotalRefunds++
			report.TotalAmount = report.TotalAmount.Sub(t.Amount)
		}

		switch t.Status {
		case TransactionStatusPending:
			report.Pending++
		case TransactionStatusCompleted:
			report.Completed++
		case TransactionStatusFailed:
			report.Failed++
		case TransactionStatusRefunded:
			report.Refunded++
		}
	}

	return report
}

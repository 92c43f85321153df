package app

import (
	"net/http"

	"github.com/metinatakli/fitgain-payments/api"
	"github.com/metinatakli/fitgain-payments/internal/domain"
)

func (app *Application) ListMyTransactions(w http.ResponseWriter, r *http.Request, params api.ListMyTransactionsParams) {
	identity := app.contextGetIdentity(r)

	pagination, err := app.readPagination(params.Page, params.PageSize)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	transactions, metadata, err := app.transactionRepo.GetPageByUserId(r.Context(), identity.UserID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeTransactionList(w, r, transactions, metadata)
}

func (app *Application) ListTransactions(w http.ResponseWriter, r *http.Request, params api.ListTransactionsParams) {
	pagination, err := app.readPagination(params.Page, params.PageSize)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	transactions, metadata, err := app.transactionRepo.GetPage(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeTransactionList(w, r, transactions, metadata)
}

func (app *Application) writeTransactionList(
	w http.ResponseWriter,
	r *http.Request,
	transactions []domain.Transaction,
	metadata *domain.Metadata) {

	resp := api.TransactionListResponse{
		Transactions: toApiTransactions(transactions),
		Metadata:     toApiMetadata(metadata),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTransactionReport(w http.ResponseWriter, r *http.Request) {
	transactions, err := app.transactionRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	report := domain.NewTransactionReport(transactions)

	resp := api.TransactionReport{
		TotalPayments: report.TotalPayments,
		TotalRefunds:  report.TotalRefunds,
		TotalAmount:   report.TotalAmount,
		Pending:       report.Pending,
		Completed:     report.Completed,
		Failed:        report.Failed,
		Refunded:      report.Refunded,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiTransaction(t *domain.Transaction) api.Transaction {
	return api.Transaction{
		Id:         t.ID,
		PaymentId:  t.PaymentID,
		UserId:     t.UserID,
		CheckoutId: t.CheckoutID,
		Amount:     t.Amount,
		Status:     api.TransactionStatus(t.Status),
		Type:       api.TransactionType(t.Type),
		CreatedAt:  t.CreatedAt,
	}
}

func toApiTransactions(transactions []domain.Transaction) []api.Transaction {
	result := make([]api.Transaction, 0, len(transactions))

	for i := range transactions {
		result = append(result, toApiTransaction(&transactions[i]))
	}

	return result
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

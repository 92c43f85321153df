package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/metinatakli/fitgain-payments/api"
	"github.com/metinatakli/fitgain-payments/internal/domain"
)

func (app *Application) CreateRefundRequest(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	identity := app.contextGetIdentity(r)

	var input api.CreateRefundRequestRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input.Reason = strings.TrimSpace(input.Reason)

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	transaction, err := app.transactionRepo.GetById(r.Context(), input.TransactionId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("transaction %d not found", input.TransactionId))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if transaction.UserID != identity.UserID {
		logger.Warn("refund request attempt on a transaction of another user", "transaction_id", transaction.ID)
		app.forbiddenResponse(w, r)
		return
	}

	request := domain.RefundRequest{
		TransactionID: transaction.ID,
		UserID:        identity.UserID,
		Reason:        input.Reason,
	}

	err = app.refundRepo.Create(r.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("transaction %d not found", input.TransactionId))
		case errors.Is(err, domain.ErrTransactionNotRefundable),
			errors.Is(err, domain.ErrDuplicatePendingRefund):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("refund requested", "refund_request_id", request.ID, "transaction_id", request.TransactionID)

	app.publish(r, domain.Event{
		Type:          domain.EventRefundRequested,
		PaymentID:     transaction.PaymentID,
		TransactionID: transaction.ID,
		RequestID:     request.ID,
		UserID:        request.UserID,
		Amount:        transaction.Amount,
	})

	err = app.writeJSON(w, http.StatusCreated, toApiRefundRequest(&request), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) HandleRefundRequest(w http.ResponseWriter, r *http.Request, requestId int) {
	logger := app.contextGetLogger(r)

	if requestId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("refund request ID must be greater than zero"))
		return
	}

	var input api.HandleRefundRequestRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	action := domain.RefundAction(input.Action)

	decision, err := app.refundRepo.Handle(r.Context(), requestId, action)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrRefundAlreadyProcessed),
			errors.Is(err, domain.ErrPaymentAlreadyRefunded):
			logger.Warn("refund request decision rejected", "refund_request_id", requestId, "error", err)
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	request := decision.Request

	logger.Info("refund request handled", "refund_request_id", request.ID, "status", request.Status)

	if action == domain.RefundActionReject {
		app.publish(r, domain.Event{
			Type:          domain.EventRefundRejected,
			TransactionID: request.TransactionID,
			RequestID:     request.ID,
			UserID:        request.UserID,
		})

		app.notify(r, decision.ContactEmail, "refund_rejected.tmpl", map[string]any{
			"requestID":     request.ID,
			"transactionID": request.TransactionID,
		})
	} else if decision.RefundErr == nil {
		data := map[string]any{
			"requestID":     request.ID,
			"transactionID": request.TransactionID,
		}

		if decision.Refund != nil {
			data["amount"] = decision.Refund.Refund.Amount.StringFixed(2)
			app.refundIssued(r, decision.Refund, domain.RefundSourceRequest, request.ID)
		}

		app.notify(r, decision.ContactEmail, "refund_approved.tmpl", data)
	}

	// the approval is committed even when the payment could not be refunded
	if decision.RefundErr != nil {
		logger.Warn("refund request approved without a refund", "refund_request_id", request.ID, "error", decision.RefundErr)
		app.editConflictResponseWithErr(w, r, decision.RefundErr)
		return
	}

	resp := api.HandleRefundRequestResponse{
		RefundRequest: toApiRefundRequest(&request),
	}

	if decision.Refund != nil {
		refund := toApiTransaction(&decision.Refund.Refund)
		resp.RefundTransaction = &refund
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteRefundRequest(w http.ResponseWriter, r *http.Request, requestId int) {
	if requestId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("refund request ID must be greater than zero"))
		return
	}

	err := app.refundRepo.DeletePending(r.Context(), requestId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrRefundNotDeletable):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.contextGetLogger(r).Info("refund request deleted", "refund_request_id", requestId)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) IssueRefund(w http.ResponseWriter, r *http.Request, paymentId int) {
	logger := app.contextGetLogger(r)

	if paymentId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("payment ID must be greater than zero"))
		return
	}

	issued, err := app.transactionRepo.IssueRefund(r.Context(), paymentId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrPaymentNotConfirmed),
			errors.Is(err, domain.ErrPaymentAlreadyRefunded):
			logger.Warn("direct refund rejected", "payment_id", paymentId, "error", err)
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.refundIssued(r, issued, domain.RefundSourceDirect, 0)

	resp := api.RefundIssuedResponse{
		RefundTransaction:   toApiTransaction(&issued.Refund),
		OriginalTransaction: toApiTransaction(&issued.Original),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) refundIssued(r *http.Request, issued *domain.IssuedRefund, source domain.RefundSource, requestId int) {
	app.contextGetLogger(r).Info("refund issued",
		"payment_id", issued.Refund.PaymentID,
		"refund_transaction_id", issued.Refund.ID,
		"source", source,
	)
	app.metrics.refundIssued(r.Context(), string(source))

	app.publish(r, domain.Event{
		Type:          domain.EventRefundIssued,
		PaymentID:     issued.Refund.PaymentID,
		TransactionID: issued.Refund.ID,
		RequestID:     requestId,
		UserID:        issued.Refund.UserID,
		Amount:        issued.Refund.Amount,
		Source:        source,
	})
}

func (app *Application) ListRefundRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := app.refundRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.RefundRequestListResponse{
		RefundRequests: toApiRefundRequestDetails(requests),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiRefundRequest(request *domain.RefundRequest) api.RefundRequest {
	return api.RefundRequest{
		Id:            request.ID,
		TransactionId: request.TransactionID,
		UserId:        request.UserID,
		Reason:        request.Reason,
		Status:        api.RefundRequestStatus(request.Status),
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}
}

func toApiRefundRequestDetails(requests []domain.RefundRequestDetail) []api.RefundRequestDetail {
	result := make([]api.RefundRequestDetail, 0, len(requests))

	for _, d := range requests {
		result = append(result, api.RefundRequestDetail{
			Id:            d.ID,
			TransactionId: d.TransactionID,
			UserId:        d.UserID,
			Reason:        d.Reason,
			Status:        api.RefundRequestStatus(d.Status),
			CreatedAt:     d.CreatedAt,
			UpdatedAt:     d.UpdatedAt,
			Transaction:   toApiTransaction(&d.Transaction),
		})
	}

	return result
}

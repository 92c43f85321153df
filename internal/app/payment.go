package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/metinatakli/fitgain-payments/api"
	"github.com/metinatakli/fitgain-payments/internal/domain"
)

const (
	maxIdempotencyKeyLength = 128
	maxEvidenceBytes        = 5 << 20
	// room for multipart boundaries and headers around the file part
	multipartOverheadBytes = 1 << 20
)

var allowedEvidenceTypes = []string{"image/jpeg", "image/png", "application/pdf"}

func (app *Application) SubmitPayment(w http.ResponseWriter, r *http.Request, params api.SubmitPaymentParams) {
	logger := app.contextGetLogger(r)
	identity := app.contextGetIdentity(r)

	var input api.SubmitPaymentRequest

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

	var idempotencyKey string
	if params.IdempotencyKey != nil {
		idempotencyKey = *params.IdempotencyKey
	}

	if len(idempotencyKey) > maxIdempotencyKeyLength {
		app.badRequestResponse(w, r, fmt.Errorf("idempotency key must be at most %d characters long", maxIdempotencyKeyLength))
		return
	}

	if idempotencyKey != "" {
		paymentId, err := app.idempotency.Reserve(r.Context(), identity.UserID, idempotencyKey)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrIdempotencyKeyInFlight):
				app.editConflictResponseWithErr(w, r, err)
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}

		if paymentId != 0 {
			app.replaySubmittedPayment(w, r, paymentId)
			return
		}
	}

	payment, transaction, err := app.paymentRepo.Submit(r.Context(), domain.PaymentSubmission{
		UserID:        identity.UserID,
		CheckoutID:    input.CheckoutId,
		AccountNumber: input.AccountNumber,
		Amount:        input.Amount,
	})
	if err != nil {
		app.releaseIdempotencyKey(r, identity.UserID, idempotencyKey)

		switch {
		case errors.Is(err, domain.ErrCheckoutNotFound):
			app.notFoundResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrAmountMismatch):
			app.failedFieldValidationResponse(w, r, "amount", err.Error())
		case errors.Is(err, domain.ErrCheckoutAlreadyPaid):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if idempotencyKey != "" {
		err = app.idempotency.Complete(r.Context(), identity.UserID, idempotencyKey, payment.ID)
		if err != nil {
			// the payment exists; a retry with this key will now fail as in flight until the key expires
			logger.Error("failed to record idempotency key", "payment_id", payment.ID, "error", err)
		}
	}

	logger.Info("payment submitted", "payment_id", payment.ID, "checkout_id", payment.CheckoutID)
	app.metrics.paymentSubmitted(r.Context())

	app.publish(r, domain.Event{
		Type:          domain.EventPaymentSubmitted,
		PaymentID:     payment.ID,
		TransactionID: transaction.ID,
		UserID:        payment.UserID,
		Amount:        payment.Amount,
	})

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/payments/%d", payment.ID))

	err = app.writeJSON(w, http.StatusCreated, toApiPayment(payment), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) replaySubmittedPayment(w http.ResponseWriter, r *http.Request, paymentId int) {
	payment, err := app.paymentRepo.GetById(r.Context(), paymentId)
	if err != nil {
		app.serverErrorResponse(w, r, fmt.Errorf("idempotency key points to payment %d: %w", paymentId, err))
		return
	}

	headers := make(http.Header)
	headers.Set("Idempotent-Replayed", strconv.FormatBool(true))

	err = app.writeJSON(w, http.StatusOK, toApiPayment(payment), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) releaseIdempotencyKey(r *http.Request, userId int, key string) {
	if key == "" {
		return
	}

	err := app.idempotency.Release(r.Context(), userId, key)
	if err != nil {
		app.contextGetLogger(r).Error("failed to release idempotency key", "error", err)
	}
}

func (app *Application) UploadPaymentEvidence(w http.ResponseWriter, r *http.Request, paymentId int) {
	logger := app.contextGetLogger(r)
	identity := app.contextGetIdentity(r)

	if paymentId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("payment ID must be greater than zero"))
		return
	}

	payment, err := app.paymentRepo.GetById(r.Context(), paymentId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !identity.CanAccess(payment.UserID) {
		logger.Warn("evidence upload attempt on a payment of another user", "payment_id", paymentId)
		app.forbiddenResponse(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxEvidenceBytes+multipartOverheadBytes)

	err = r.ParseMultipartForm(maxEvidenceBytes)
	if err != nil {
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &maxBytesError):
			app.payloadTooLargeResponse(w, r, fmt.Errorf("evidence file must not be larger than %d bytes", maxEvidenceBytes))
		default:
			app.badRequestResponse(w, r, fmt.Errorf("body must be a multipart form: %w", err))
		}

		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("evidence")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("evidence file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxEvidenceBytes {
		app.payloadTooLargeResponse(w, r, fmt.Errorf("evidence file must not be larger than %d bytes", maxEvidenceBytes))
		return
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("evidence file could not be read"))
		return
	}

	if !mimetype.EqualsAny(mtype.String(), allowedEvidenceTypes...) {
		app.unsupportedMediaTypeResponse(w, r, fmt.Errorf("evidence must be a JPEG, PNG or PDF file, got %s", mtype.String()))
		return
	}

	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	key := fmt.Sprintf("%d-%s%s", payment.ID, uuid.NewString(), mtype.Extension())

	ref, err := app.evidence.Put(r.Context(), key, mtype.String(), file, header.Size)
	if err != nil {
		app.serverErrorResponse(w, r, fmt.Errorf("evidence couldn't be stored: %w", err))
		return
	}

	previous, err := app.paymentRepo.ReplaceEvidence(r.Context(), payment.ID, ref)
	if err != nil {
		app.discardEvidence(r, ref)

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if previous != nil && *previous != ref {
		app.discardEvidence(r, *previous)
	}

	logger.Info("payment evidence stored", "payment_id", payment.ID, "evidence", ref)

	payment.Evidence = &ref

	err = app.writeJSON(w, http.StatusOK, toApiPayment(payment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// discardEvidence removes a stored file that no payment references.
func (app *Application) discardEvidence(r *http.Request, ref string) {
	err := app.evidence.Delete(r.Context(), ref)
	if err != nil {
		app.contextGetLogger(r).Error("failed to delete evidence file", "evidence", ref, "error", err)
	}
}

func (app *Application) ConfirmPayment(w http.ResponseWriter, r *http.Request, paymentId int) {
	app.decidePayment(w, r, paymentId, domain.PaymentStatusConfirmed)
}

func (app *Application) RejectPayment(w http.ResponseWriter, r *http.Request, paymentId int) {
	app.decidePayment(w, r, paymentId, domain.PaymentStatusRejected)
}

func (app *Application) decidePayment(w http.ResponseWriter, r *http.Request, paymentId int, status domain.PaymentStatus) {
	logger := app.contextGetLogger(r)

	if paymentId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("payment ID must be greater than zero"))
		return
	}

	decision, err := app.paymentRepo.Decide(r.Context(), paymentId, status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrInvalidPaymentStatus):
			logger.Warn("payment decision rejected", "payment_id", paymentId, "target_status", status, "error", err)
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	payment := decision.Payment

	logger.Info("payment decided", "payment_id", payment.ID, "status", payment.Status)
	app.metrics.paymentDecided(r.Context(), string(payment.Status))

	eventType := domain.EventPaymentConfirmed
	templateFile := "payment_confirmed.tmpl"
	if status == domain.PaymentStatusRejected {
		eventType = domain.EventPaymentRejected
		templateFile = "payment_rejected.tmpl"
	}

	app.publish(r, domain.Event{
		Type:          eventType,
		PaymentID:     payment.ID,
		TransactionID: decision.Transaction.ID,
		UserID:        payment.UserID,
		Amount:        payment.Amount,
	})

	app.notify(r, decision.ContactEmail, templateFile, map[string]any{
		"paymentID":  payment.ID,
		"checkoutID": payment.CheckoutID,
		"amount":     payment.Amount.StringFixed(2),
	})

	err = app.writeJSON(w, http.StatusOK, toApiPayment(&payment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListPayments(w http.ResponseWriter, r *http.Request, params api.ListPaymentsParams) {
	pagination, err := app.readPagination(params.Page, params.PageSize)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	payments, metadata, err := app.paymentRepo.GetAllWithTransactions(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PaymentListResponse{
		Payments: toApiAdminPayments(payments),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiPayment(payment *domain.Payment) api.Payment {
	return api.Payment{
		Id:            payment.ID,
		UserId:        payment.UserID,
		CheckoutId:    payment.CheckoutID,
		AccountNumber: payment.AccountNumber,
		Amount:        payment.Amount,
		Evidence:      payment.Evidence,
		Status:        api.PaymentStatus(payment.Status),
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}

func toApiAdminPayments(payments []domain.PaymentWithTransaction) []api.AdminPayment {
	result := make([]api.AdminPayment, 0, len(payments))

	for _, p := range payments {
		adminPayment := api.AdminPayment{
			Id:            p.ID,
			UserId:        p.UserID,
			CheckoutId:    p.CheckoutID,
			AccountNumber: p.AccountNumber,
			Amount:        p.Amount,
			Evidence:      p.Evidence,
			Status:        api.PaymentStatus(p.Status),
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		}

		if p.Transaction != nil {
			transaction := toApiTransaction(p.Transaction)
			adminPayment.Transaction = &transaction
		}

		result = append(result, adminPayment)
	}

	return result
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/fitgain-payments/internal/domain"
)

const refundRequestColumns = `id, transaction_id, user_id, reason, status, created_at, updated_at`

type PostgresRefundRequestRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRefundRequestRepository(db *pgxpool.Pool) *PostgresRefundRequestRepository {
	return &PostgresRefundRequestRepository{
		db: db,
	}
}

func scanRefundRequest(row pgx.Row, r *domain.RefundRequest) error {
	return row.Scan(
		&r.ID,
		&r.TransactionID,
		&r.UserID,
		&r.Reason,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
}

// Create inserts the request only if the transaction is still completed at
// insert time. The partial unique index on pending requests rejects a
// concurrent second request for the same transaction.
func (p *PostgresRefundRequestRepository) Create(ctx context.Context, request *domain.RefundRequest) error {
	query := `
		INSERT INTO refund_requests (transaction_id, user_id, reason)
		SELECT t.id, $2, $3
		FROM transactions t
		WHERE t.id = $1 AND t.status = 'completed'
		RETURNING ` + refundRequestColumns

	err := scanRefundRequest(p.db.QueryRow(ctx, query, request.TransactionID, request.UserID, request.Reason), request)
	if err == nil {
		return nil
	}

	if isUniqueViolation(err, "uq_refund_requests_pending") {
		return domain.ErrDuplicatePendingRefund
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var exists bool

	err = p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)`, request.TransactionID).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrRecordNotFound
	}

	return domain.ErrTransactionNotRefundable
}

func (p *PostgresRefundRequestRepository) GetById(ctx context.Context, id int) (*domain.RefundRequest, error) {
	query := `SELECT ` + refundRequestColumns + ` FROM refund_requests WHERE id = $1`

	var request domain.RefundRequest

	err := scanRefundRequest(p.db.QueryRow(ctx, query, id), &request)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &request, nil
}

func (p *PostgresRefundRequestRepository) GetAll(ctx context.Context) ([]domain.RefundRequestDetail, error) {
	query := `
		SELECT
			r.id, r.transaction_id, r.user_id, r.reason, r.status, r.created_at, r.updated_at,
			t.id, t.payment_id, t.user_id, t.checkout_id, t.amount, t.status, t.type, t.created_at
		FROM refund_requests r
		JOIN transactions t ON t.id = r.transaction_id
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]domain.RefundRequestDetail, 0)

	for rows.Next() {
		var d domain.RefundRequestDetail

		err := rows.Scan(
			&d.ID,
			&d.TransactionID,
			&d.UserID,
			&d.Reason,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.Transaction.ID,
			&d.Transaction.PaymentID,
			&d.Transaction.UserID,
			&d.Transaction.CheckoutID,
			&d.Transaction.Amount,
			&d.Transaction.Status,
			&d.Transaction.Type,
			&d.Transaction.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		requests = append(requests, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// Handle moves the request out of pending with a compare-and-set, so two
// concurrent decisions on the same request cannot both succeed. On approval
// the refund is issued in the same database transaction. If the payment is
// no longer refundable the approval is still committed and the refusal is
// reported through RefundDecision.RefundErr.
func (p *PostgresRefundRequestRepository) Handle(
	ctx context.Context,
	id int,
	action domain.RefundAction) (*domain.RefundDecision, error) {

	var decision domain.RefundDecision

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE refund_requests
			SET status = $2, updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING ` + refundRequestColumns

		err := scanRefundRequest(tx.QueryRow(ctx, query, id, action.ResultingStatus()), &decision.Request)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return p.notPendingReason(ctx, tx, id, domain.ErrRefundAlreadyProcessed)
			}

			return err
		}

		query = `
			SELECT t.payment_id
			FROM transactions t
			WHERE t.id = $1
		`

		var paymentId int

		err = tx.QueryRow(ctx, query, decision.Request.TransactionID).Scan(&paymentId)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		payment, contactEmail, err := lockPayment(ctx, tx, paymentId)
		if err != nil {
			return err
		}

		decision.ContactEmail = contactEmail

		if action != domain.RefundActionApprove {
			return nil
		}

		if !payment.Status.Refundable() {
			decision.RefundErr = fmt.Errorf(
				"%w: cannot refund a payment with status %q, only confirmed or pending payments can be refunded",
				domain.ErrInvalidPaymentStatus,
				payment.Status,
			)

			return nil
		}

		issued, err := issueRefund(ctx, tx, payment.ID)
		if err != nil {
			return err
		}

		issued.ContactEmail = contactEmail
		decision.Refund = issued

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &decision, nil
}

func (p *PostgresRefundRequestRepository) DeletePending(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `DELETE FROM refund_requests WHERE id = $1 AND status = 'pending'`

		result, err := tx.Exec(ctx, query, id)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return p.notPendingReason(ctx, tx, id, domain.ErrRefundNotDeletable)
		}

		return nil
	})
}

// notPendingReason tells a missing request apart from one that has already
// left the pending state.
func (p *PostgresRefundRequestRepository) notPendingReason(
	ctx context.Context,
	tx pgx.Tx,
	id int,
	processedErr error) error {

	var exists bool

	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM refund_requests WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrRecordNotFound
	}

	return processedErr
}

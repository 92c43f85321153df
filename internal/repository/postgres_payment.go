package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/shopspring/decimal"
)

const paymentColumns = `p.id, p.user_id, p.checkout_id, p.account_number, p.amount, p.evidence, p.status, p.created_at, p.updated_at`

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func scanPayment(row pgx.Row, payment *domain.Payment, extra ...any) error {
	dest := []any{
		&payment.ID,
		&payment.UserID,
		&payment.CheckoutID,
		&payment.AccountNumber,
		&payment.Amount,
		&payment.Evidence,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	}

	return row.Scan(append(dest, extra...)...)
}

func (p *PostgresPaymentRepository) Submit(
	ctx context.Context,
	submission domain.PaymentSubmission) (*domain.Payment, *domain.Transaction, error) {

	var payment domain.Payment
	var transaction domain.Transaction

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		checkout, err := getCheckoutForPayment(ctx, tx, submission.CheckoutID, submission.UserID)
		if err != nil {
			return err
		}

		if !checkout.Total.Equal(submission.Amount) {
			return domain.ErrAmountMismatch
		}

		query := `
			INSERT INTO payments AS p (user_id, checkout_id, account_number, amount)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + paymentColumns

		err = scanPayment(tx.QueryRow(
			ctx,
			query,
			submission.UserID,
			submission.CheckoutID,
			submission.AccountNumber,
			submission.Amount,
		), &payment)
		if err != nil {
			if isUniqueViolation(err, "uq_payments_checkout_active") {
				return domain.ErrCheckoutAlreadyPaid
			}

			return err
		}

		query = `
			INSERT INTO transactions (payment_id, user_id, checkout_id, amount, status, type)
			VALUES ($1, $2, $3, $4, 'completed', 'payment')
			RETURNING ` + transactionColumns

		err = scanTransaction(tx.QueryRow(
			ctx,
			query,
			payment.ID,
			payment.UserID,
			payment.CheckoutID,
			payment.Amount,
		), &transaction)
		if err != nil {
			return err
		}

		// the payment transaction is settled on submission, so the checkout's
		// items leave the buyer's cart now regardless of the admin decision
		if transaction.Status == domain.TransactionStatusCompleted {
			query = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = ANY($2)`

			_, err = tx.Exec(ctx, query, submission.UserID, checkout.ProductIDs())
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &payment, &transaction, nil
}

func getCheckoutForPayment(ctx context.Context, tx pgx.Tx, checkoutId, userId int) (*domain.Checkout, error) {
	query := `
		SELECT id, user_id, user_mail, total, status
		FROM checkouts
		WHERE id = $1 AND user_id = $2
		FOR SHARE
	`

	var checkout domain.Checkout

	err := tx.QueryRow(ctx, query, checkoutId, userId).Scan(
		&checkout.ID,
		&checkout.UserID,
		&checkout.UserMail,
		&checkout.Total,
		&checkout.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCheckoutNotFound
		}

		return nil, err
	}

	query = `
		SELECT product_id, product_name, quantity, price
		FROM checkout_items
		WHERE checkout_id = $1
	`

	rows, err := tx.Query(ctx, query, checkoutId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CheckoutItem

		err = rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.Price)
		if err != nil {
			return nil, err
		}

		checkout.Items = append(checkout.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &checkout, nil
}

func (p *PostgresPaymentRepository) GetById(ctx context.Context, id int) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.id = $1`

	var payment domain.Payment

	err := scanPayment(p.db.QueryRow(ctx, query, id), &payment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &payment, nil
}

// lockPayment loads a payment and the checkout contact address, holding a
// row lock on the payment until the transaction ends.
func lockPayment(ctx context.Context, tx pgx.Tx, id int) (*domain.Payment, string, error) {
	query := `
		SELECT ` + paymentColumns + `, c.user_mail
		FROM payments p
		JOIN checkouts c ON c.id = p.checkout_id
		WHERE p.id = $1
		FOR UPDATE OF p
	`

	var payment domain.Payment
	var contactEmail string

	err := scanPayment(tx.QueryRow(ctx, query, id), &payment, &contactEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrRecordNotFound
		}

		return nil, "", err
	}

	return &payment, contactEmail, nil
}

func (p *PostgresPaymentRepository) Decide(
	ctx context.Context,
	id int,
	status domain.PaymentStatus) (*domain.PaymentDecision, error) {

	var decision domain.PaymentDecision

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		payment, contactEmail, err := lockPayment(ctx, tx, id)
		if err != nil {
			return err
		}

		if !payment.Status.CanTransitionTo(status) {
			return domain.InvalidPaymentTransition(payment.Status, status)
		}

		query := `
			UPDATE payments AS p
			SET status = $2, updated_at = NOW()
			WHERE p.id = $1
			RETURNING ` + paymentColumns

		err = scanPayment(tx.QueryRow(ctx, query, id, status), &decision.Payment)
		if err != nil {
			return err
		}

		// a payment refunded while still pending keeps its refunded ledger row
		query = `
			UPDATE transactions
			SET status = $2, updated_at = NOW()
			WHERE payment_id = $1 AND type = 'payment' AND status <> 'refunded'
			RETURNING ` + transactionColumns

		err = scanTransaction(tx.QueryRow(ctx, query, id, domain.TransactionStatusFor(status)), &decision.Transaction)
		if errors.Is(err, pgx.ErrNoRows) {
			query = `
				SELECT ` + transactionColumns + `
				FROM transactions
				WHERE payment_id = $1 AND type = 'payment'
			`

			err = scanTransaction(tx.QueryRow(ctx, query, id), &decision.Transaction)
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}
		}
		if err != nil {
			return err
		}

		decision.ContactEmail = contactEmail

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &decision, nil
}

func (p *PostgresPaymentRepository) ReplaceEvidence(ctx context.Context, id int, evidence string) (*string, error) {
	var previous *string

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `SELECT evidence FROM payments WHERE id = $1 FOR UPDATE`

		err := tx.QueryRow(ctx, query, id).Scan(&previous)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query = `UPDATE payments SET evidence = $2, updated_at = NOW() WHERE id = $1`

		_, err = tx.Exec(ctx, query, id, evidence)

		return err
	})
	if err != nil {
		return nil, err
	}

	return previous, nil
}

func (p *PostgresPaymentRepository) GetAllWithTransactions(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.PaymentWithTransaction, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			` + paymentColumns + `,
			t.id,
			t.checkout_id,
			t.status,
			t.amount,
			t.created_at
		FROM payments p
		LEFT JOIN transactions t ON t.payment_id = p.id AND t.type = 'payment'
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	payments := make([]domain.PaymentWithTransaction, 0)
	totalRecords := 0

	for rows.Next() {
		var (
			pwt          domain.PaymentWithTransaction
			txId         *int
			txCheckoutId *int
			txStatus     *domain.TransactionStatus
			txAmount     decimal.NullDecimal
			txCreatedAt  pgtype.Timestamptz
		)

		err := rows.Scan(
			&totalRecords,
			&pwt.ID,
			&pwt.UserID,
			&pwt.CheckoutID,
			&pwt.AccountNumber,
			&pwt.Amount,
			&pwt.Evidence,
			&pwt.Status,
			&pwt.CreatedAt,
			&pwt.UpdatedAt,
			&txId,
			&txCheckoutId,
			&txStatus,
			&txAmount,
			&txCreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		if txId != nil {
			pwt.Transaction = &domain.Transaction{
				ID:         *txId,
				PaymentID:  pwt.ID,
				UserID:     pwt.UserID,
				CheckoutID: txCheckoutId,
				Amount:     txAmount.Decimal,
				Status:     *txStatus,
				Type:       domain.TransactionTypePayment,
				CreatedAt:  txCreatedAt.Time,
			}
		}

		payments = append(payments, pwt)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return payments, metadata, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/fitgain-payments/internal/domain"
)

const transactionColumns = `id, payment_id, user_id, checkout_id, amount, status, type, created_at`

type PostgresTransactionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTransactionRepository(db *pgxpool.Pool) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{
		db: db,
	}
}

func scanTransaction(row pgx.Row, t *domain.Transaction) error {
	return row.Scan(
		&t.ID,
		&t.PaymentID,
		&t.UserID,
		&t.CheckoutID,
		&t.Amount,
		&t.Status,
		&t.Type,
		&t.CreatedAt,
	)
}

func (p *PostgresTransactionRepository) GetById(ctx context.Context, id int) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var transaction domain.Transaction

	err := scanTransaction(p.db.QueryRow(ctx, query, id), &transaction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &transaction, nil
}

func (p *PostgresTransactionRepository) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)

	for rows.Next() {
		var transaction domain.Transaction

		err = scanTransaction(rows, &transaction)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (p *PostgresTransactionRepository) GetPage(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Transaction, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	return p.queryPage(ctx, query, pagination, pagination.Limit(), pagination.Offset())
}

func (p *PostgresTransactionRepository) GetPageByUserId(
	ctx context.Context,
	userId int,
	pagination domain.Pagination) ([]domain.Transaction, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	return p.queryPage(ctx, query, pagination, userId, pagination.Limit(), pagination.Offset())
}

func (p *PostgresTransactionRepository) queryPage(
	ctx context.Context,
	query string,
	pagination domain.Pagination,
	args ...any) ([]domain.Transaction, *domain.Metadata, error) {

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	totalRecords := 0

	for rows.Next() {
		var t domain.Transaction

		err := rows.Scan(
			&totalRecords,
			&t.ID,
			&t.PaymentID,
			&t.UserID,
			&t.CheckoutID,
			&t.Amount,
			&t.Status,
			&t.Type,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return transactions, metadata, nil
}

func (p *PostgresTransactionRepository) IssueRefund(ctx context.Context, paymentId int) (*domain.IssuedRefund, error) {
	var issued *domain.IssuedRefund

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		payment, contactEmail, err := lockPayment(ctx, tx, paymentId)
		if err != nil {
			return err
		}

		if payment.Status != domain.PaymentStatusConfirmed {
			return domain.ErrPaymentNotConfirmed
		}

		issued, err = issueRefund(ctx, tx, payment.ID)
		if err != nil {
			return err
		}

		issued.ContactEmail = contactEmail

		return nil
	})
	if err != nil {
		return nil, err
	}

	return issued, nil
}

// issueRefund is the single place refund transactions are minted. The
// unique (payment_id, type) index turns a second issuance for the same
// payment into ErrPaymentAlreadyRefunded.
func issueRefund(ctx context.Context, tx pgx.Tx, paymentId int) (*domain.IssuedRefund, error) {
	query := `
		UPDATE transactions
		SET status = 'refunded', updated_at = NOW()
		WHERE payment_id = $1 AND type = 'payment'
		RETURNING ` + transactionColumns

	var original domain.Transaction

	err := scanTransaction(tx.QueryRow(ctx, query, paymentId), &original)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	query = `
		INSERT INTO transactions (payment_id, user_id, amount, status, type)
		VALUES ($1, $2, $3, 'refunded', 'refund')
		RETURNING ` + transactionColumns

	var refund domain.Transaction

	err = scanTransaction(tx.QueryRow(ctx, query, paymentId, original.UserID, original.Amount), &refund)
	if err != nil {
		if isUniqueViolation(err, "uq_transactions_payment_type") {
			return nil, domain.ErrPaymentAlreadyRefunded
		}

		return nil, err
	}

	return &domain.IssuedRefund{
		Refund:   refund,
		Original: original,
	}, nil
}

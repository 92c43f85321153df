package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/fitgain-payments/internal/app"
	"github.com/metinatakli/fitgain-payments/internal/auth"
	"github.com/metinatakli/fitgain-payments/internal/mailer"
	"github.com/metinatakli/fitgain-payments/internal/mocks"
	"github.com/metinatakli/fitgain-payments/internal/repository"
	"github.com/metinatakli/fitgain-payments/internal/storage"
	appvalidator "github.com/metinatakli/fitgain-payments/internal/validator"
)

type TestApp struct {
	App       *app.Application
	DB        *pgxpool.Pool
	Mailer    *mailer.MockMailer
	Publisher *mocks.RecordingPublisher
	Verifier  *auth.Verifier
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mailer := mailer.NewMockMailer()
	publisher := &mocks.RecordingPublisher{}
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	evidence, err := storage.NewDiskEvidenceStore(cfg.Storage.Dir)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	paymentRepo := repository.NewPostgresPaymentRepository(db)
	transactionRepo := repository.NewPostgresTransactionRepository(db)
	refundRepo := repository.NewPostgresRefundRequestRepository(db)
	idempotency := repository.NewRedisIdempotencyStore(redisClient)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mailer,
		verifier,
		paymentRepo,
		transactionRepo,
		refundRepo,
		idempotency,
		evidence,
		publisher,
	)

	return &TestApp{
		App:       application,
		DB:        db,
		Mailer:    mailer,
		Publisher: publisher,
		Verifier:  verifier,
	}, nil
}

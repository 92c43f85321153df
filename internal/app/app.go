package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/fitgain-payments/api"
	"github.com/metinatakli/fitgain-payments/internal/auth"
	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/metinatakli/fitgain-payments/internal/events"
	"github.com/metinatakli/fitgain-payments/internal/mailer"
	"github.com/metinatakli/fitgain-payments/internal/repository"
	"github.com/metinatakli/fitgain-payments/internal/storage"
	appvalidator "github.com/metinatakli/fitgain-payments/internal/validator"
	"github.com/metinatakli/fitgain-payments/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "fitgain-payments"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	mailer    mailer.Mailer
	verifier  *auth.Verifier
	metrics   *metrics
	wg        sync.WaitGroup

	paymentRepo     domain.PaymentRepository
	transactionRepo domain.TransactionRepository
	refundRepo      domain.RefundRequestRepository

	idempotency domain.IdempotencyStore
	evidence    domain.EvidenceStore
	publisher   domain.EventPublisher
}

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Auth             AuthConfig
	Storage          StorageConfig
	Kafka            KafkaConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

// StorageConfig selects where payment evidence files are kept. Driver is
// either "disk" or "s3".
type StorageConfig struct {
	Driver          string
	Dir             string
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// KafkaConfig configures event publishing. With no brokers events are
// dropped.
type KafkaConfig struct {
	Brokers     []string
	TopicPrefix string
}

func Run() error {
	// .env is optional; real deployments pass flags or environment variables
	_ = godotenv.Load()

	var cfg Config
	var kafkaBrokers string

	flag.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flag.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", envString("SMTP_HOST", "sandbox.smtp.mailtrap.io"), "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", os.Getenv("SMTP_USERNAME"), "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", os.Getenv("SMTP_PASSWORD"), "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", envString("SMTP_SENDER", "Fit-Gain <no-reply@fitgain.example>"), "SMTP sender")

	flag.StringVar(&cfg.Auth.JWTSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "HMAC secret used to verify identity tokens")
	flag.StringVar(&cfg.Auth.JWTIssuer, "jwt-issuer", os.Getenv("JWT_ISSUER"), "Expected issuer of identity tokens")

	flag.StringVar(&cfg.Storage.Driver, "storage-driver", envString("STORAGE_DRIVER", "disk"), "Evidence storage (disk|s3)")
	flag.StringVar(&cfg.Storage.Dir, "storage-dir", envString("STORAGE_DIR", "Uploads/payments"), "Evidence directory for the disk driver")
	flag.StringVar(&cfg.Storage.Bucket, "s3-bucket", os.Getenv("S3_BUCKET"), "Evidence bucket for the s3 driver")
	flag.StringVar(&cfg.Storage.Region, "s3-region", envString("S3_REGION", "us-east-1"), "S3 region")
	flag.StringVar(&cfg.Storage.Endpoint, "s3-endpoint", os.Getenv("S3_ENDPOINT"), "S3 compatible endpoint, empty for AWS")
	flag.StringVar(&cfg.Storage.AccessKeyID, "s3-access-key-id", os.Getenv("S3_ACCESS_KEY_ID"), "S3 access key id")
	flag.StringVar(&cfg.Storage.SecretAccessKey, "s3-secret-access-key", os.Getenv("S3_SECRET_ACCESS_KEY"), "S3 secret access key")

	flag.StringVar(&kafkaBrokers, "kafka-brokers", os.Getenv("KAFKA_BROKERS"), "Comma separated Kafka brokers, empty disables events")
	flag.StringVar(&cfg.Kafka.TopicPrefix, "kafka-topic-prefix", envString("KAFKA_TOPIC_PREFIX", "fitgain."), "Prefix for event topics")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", os.Getenv("OTEL_COLLECTOR_URL"), "OpenTelemetry collector gRPC endpoint")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	if kafkaBrokers != "" {
		cfg.Kafka.Brokers = strings.Split(kafkaBrokers, ",")
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("jwt secret must be provided")
	}

	handler := slog.Handler(slog.NewTextHandler(os.Stdout, nil))
	if cfg.OtelCollectorUrl != "" {
		handler = NewMultiHandler(handler, otelslog.NewHandler(serviceName))
	}

	logger := slog.New(handler)

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	evidenceStore, err := newEvidenceStore(cfg)
	if err != nil {
		return err
	}

	publisher, err := newEventPublisher(cfg)
	if err != nil {
		return err
	}

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
		repository.NewPostgresPaymentRepository(db),
		repository.NewPostgresTransactionRepository(db),
		repository.NewPostgresRefundRequestRepository(db),
		repository.NewRedisIdempotencyStore(redisClient),
		evidenceStore,
		publisher,
	)

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	verifier *auth.Verifier,
	paymentRepo domain.PaymentRepository,
	transactionRepo domain.TransactionRepository,
	refundRepo domain.RefundRequestRepository,
	idempotency domain.IdempotencyStore,
	evidence domain.EvidenceStore,
	publisher domain.EventPublisher) *Application {

	return &Application{
		config:          cfg,
		logger:          logger,
		db:              db,
		redis:           redisClient,
		validator:       validator,
		mailer:          mailer,
		verifier:        verifier,
		metrics:         newMetrics(),
		paymentRepo:     paymentRepo,
		transactionRepo: transactionRepo,
		refundRepo:      refundRepo,
		idempotency:     idempotency,
		evidence:        evidence,
		publisher:       publisher,
	}
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}

func newEvidenceStore(cfg Config) (domain.EvidenceStore, error) {
	switch cfg.Storage.Driver {
	case "disk":
		return storage.NewDiskEvidenceStore(cfg.Storage.Dir)
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return storage.NewS3EvidenceStore(ctx, storage.S3Config{
			Bucket:          cfg.Storage.Bucket,
			Region:          cfg.Storage.Region,
			Endpoint:        cfg.Storage.Endpoint,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Prefix:          "payments/",
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newEventPublisher(cfg Config) (domain.EventPublisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.NoopPublisher{}, nil
	}

	return events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		app.logger.Info("completing background tasks", "addr", srv.Addr)

		app.wg.Wait()

		shutdownError <- app.publisher.Close()
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(app.logRequest)
	r.Use(app.authenticate)

	h := &api.ServerInterfaceWrapper{
		Handler:          app,
		ErrorHandlerFunc: app.invalidParamResponse,
	}

	r.Get("/health", h.GetHealth)
	r.Get("/openapi.json", app.GetOpenAPISpec)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Post("/payments", h.SubmitPayment)
		r.Post("/payments/{paymentId}/evidence", h.UploadPaymentEvidence)
		r.Get("/users/me/transactions", h.ListMyTransactions)
		r.Post("/refund-requests", h.CreateRefundRequest)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(app.requireAdmin)

		r.Get("/payments", h.ListPayments)
		r.Put("/payments/{paymentId}/confirm", h.ConfirmPayment)
		r.Put("/payments/{paymentId}/reject", h.RejectPayment)
		r.Post("/payments/{paymentId}/refund", h.IssueRefund)

		r.Get("/transactions", h.ListTransactions)
		r.Get("/transactions/report", h.GetTransactionReport)

		r.Get("/refund-requests", h.ListRefundRequests)
		r.Put("/refund-requests/{requestId}", h.HandleRefundRequest)
		r.Delete("/refund-requests/{requestId}", h.DeleteRefundRequest)
	})

	return r
}

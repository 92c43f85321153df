package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/fitgain-payments/api"
	"github.com/metinatakli/fitgain-payments/internal/auth"
	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/metinatakli/fitgain-payments/internal/mailer"
	"github.com/metinatakli/fitgain-payments/internal/mocks"
	"github.com/metinatakli/fitgain-payments/internal/validator"
	"github.com/shopspring/decimal"
)

const (
	testJWTSecret = "test-secret"
	testUserId    = 7
	testAdminId   = 1
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:          Config{Env: "test"},
		validator:       validator.NewValidator(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		verifier:        auth.NewVerifier(testJWTSecret, ""),
		metrics:         newMetrics(),
		mailer:          mailer.NewMockMailer(),
		paymentRepo:     &mocks.MockPaymentRepo{},
		transactionRepo: &mocks.MockTransactionRepo{},
		refundRepo:      &mocks.MockRefundRequestRepo{},
		idempotency:     &mocks.MockIdempotencyStore{},
		evidence:        &mocks.MockEvidenceStore{},
		publisher:       &mocks.RecordingPublisher{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// authorize signs a token for the given caller and attaches it to r.
func authorize(t *testing.T, r *http.Request, userId int, isAdmin bool) *http.Request {
	token, err := auth.NewVerifier(testJWTSecret, "").Issue(domain.Identity{UserID: userId, IsAdmin: isAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	r.Header.Set("Authorization", "Bearer "+token)

	return r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

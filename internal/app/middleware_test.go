package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/metinatakli/fitgain-payments/api"
	"github.com/metinatakli/fitgain-payments/internal/auth"
	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthentication(t *testing.T) {
	expired, err := auth.NewVerifier(testJWTSecret, "").Issue(domain.Identity{UserID: testUserId}, -time.Minute)
	require.NoError(t, err)

	foreign, err := auth.NewVerifier("another-secret", "").Issue(domain.Identity{UserID: testUserId, IsAdmin: true}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		url            string
		authorization  string
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "missing token on a user route",
			url:            "/users/me/transactions",
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: "You must be authenticated to access this resource",
		},
		{
			name:           "missing token on an admin route",
			url:            "/admin/transactions/report",
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: "You must be authenticated to access this resource",
		},
		{
			name:           "wrong scheme",
			url:            "/users/me/transactions",
			authorization:  "Basic dXNlcjpwYXNz",
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: "invalid or missing authentication token",
		},
		{
			name:           "expired token",
			url:            "/users/me/transactions",
			authorization:  "Bearer " + expired,
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: "invalid or missing authentication token",
		},
		{
			name:           "admin claim signed with another key",
			url:            "/admin/transactions/report",
			authorization:  "Bearer " + foreign,
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: "invalid or missing authentication token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			w, r := executeRequest(t, http.MethodGet, tt.url, nil)
			if tt.authorization != "" {
				r.Header.Set("Authorization", tt.authorization)
			}

			app.Routes().ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestHealthIsPublic(t *testing.T) {
	app := newTestApplication()

	w, r := executeRequest(t, http.MethodGet, "/health", nil)
	app.Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var response api.HealthcheckResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.Equal(t, "UP", response.Status)
	assert.Equal(t, "test", response.SystemInfo.Environment)
}

func TestOpenAPISpecIsServed(t *testing.T) {
	app := newTestApplication()

	w, r := executeRequest(t, http.MethodGet, "/openapi.json", nil)
	app.Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/admin/refund-requests/{requestId}")
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication()

	handler := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	}))

	w, r := executeRequest(t, http.MethodGet, "/", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
}

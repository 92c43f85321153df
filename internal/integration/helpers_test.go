package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/fitgain-payments/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	emailWait = 2 * time.Second
	emailTick = 20 * time.Millisecond
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"updatedAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ignored := keysToIgnore[k]
		return ignored
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		switch nested := m[k].(type) {
		case map[string]any:
			cleanMap(nested)
		case []any:
			for _, item := range nested {
				if itemMap, ok := item.(map[string]any); ok {
					cleanMap(itemMap)
				}
			}
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)

	_, err = db.Exec(context.Background(), string(content))
	require.NoError(t, err, "failed to execute %s", path)
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	t.Helper()
	executeSQLFile(t, db, "testdata/truncate.sql")
}

func (a *TestApp) bearerHeaders(t testing.TB, userId int, isAdmin bool) map[string]string {
	t.Helper()

	token, err := a.Verifier.Issue(domain.Identity{UserID: userId, IsAdmin: isAdmin}, time.Hour)
	require.NoError(t, err)

	return map[string]string{"Authorization": "Bearer " + token}
}

func (a *TestApp) userHeaders(t testing.TB) map[string]string {
	return a.bearerHeaders(t, TestUserId, false)
}

func (a *TestApp) otherUserHeaders(t testing.TB) map[string]string {
	return a.bearerHeaders(t, TestOtherUserId, false)
}

func (a *TestApp) adminHeaders(t testing.TB) map[string]string {
	return a.bearerHeaders(t, TestAdminId, true)
}

// do sends a request through the router and decodes a JSON response into dst
// when dst is not nil.
func (a *TestApp) do(t testing.TB, method, path, body string, headers map[string]string, dst any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := prepareRequest(method, path, reader, headers)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()
	t.Cleanup(func() { res.Body.Close() })

	if dst != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(dst), "decode %s %s", method, path)
	}

	return res
}

func submitPaymentBody(checkoutId int, amount string) string {
	return fmt.Sprintf(`{"checkoutId": %d, "accountNumber": %q, "amount": %q}`, checkoutId, TestAccountNumber, amount)
}

func requireDecimal(t testing.TB, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func queryInt(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))

	return n
}

// status sends a request and returns only the status code. It does not touch
// testing.TB, so it is safe to call from several goroutines.
func (a *TestApp) status(method, path, body string, headers map[string]string) int {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, _ := prepareRequest(method, path, reader, headers)

	rec := httptest.NewRecorder()
	a.App.Routes().ServeHTTP(rec, req)

	return rec.Code
}

// concurrently runs fn n times in parallel, released together, and counts
// the returned status codes.
func concurrently(n int, fn func(i int) int) map[int]int {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		start  = make(chan struct{})
		counts = make(map[int]int)
	)

	for i := range n {
		wg.Add(1)

		go func() {
			defer wg.Done()
			<-start

			code := fn(i)

			mu.Lock()
			counts[code]++
			mu.Unlock()
		}()
	}

	close(start)
	wg.Wait()

	return counts
}

func queryString(t testing.TB, db *pgxpool.Pool, query string, args ...any) string {
	t.Helper()

	var s string
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&s))

	return s
}

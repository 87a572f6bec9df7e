package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-enough-length-000"

func TestCustomerAuth(t *testing.T) {
	valid, err := IssueCustomerToken(testSecret, "bank-ledger", 42, time.Hour)
	require.NoError(t, err)
	expired, err := IssueCustomerToken(testSecret, "bank-ledger", 42, -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueCustomerToken("another-secret-another-secret-00", "bank-ledger", 42, time.Hour)
	require.NoError(t, err)
	wrongIssuer, err := IssueCustomerToken(testSecret, "someone-else", 42, time.Hour)
	require.NoError(t, err)
	anonymous, err := IssueCustomerToken(testSecret, "bank-ledger", 0, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + foreign, http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + wrongIssuer, http.StatusUnauthorized},
		{"no customer", "Bearer " + anonymous, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = CustomerIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/my", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			CustomerAuth(testSecret, "bank-ledger")(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Code)
			if tc.want == http.StatusOK {
				assert.EqualValues(t, 42, seen)
			}
		})
	}
}

func TestCustomerIDFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := CustomerIDFromContext(req.Context())
	assert.False(t, ok)
}

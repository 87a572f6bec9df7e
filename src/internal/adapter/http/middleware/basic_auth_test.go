package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func channelKeyHash(t *testing.T, key string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash channel key: %v", err)
	}
	return string(hash)
}

func basicAuthStatus(mw func(http.Handler) http.Handler, credentials string) int {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if credentials != "" {
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(credentials)))
	}

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)
	return rr.Code
}

func TestBasicAuth_AllowsValidCredentials(t *testing.T) {
	mw := BasicAuth("LedgerAdmin", channelKeyHash(t, "LedgerKey001"))

	if code := basicAuthStatus(mw, "LedgerAdmin:LedgerKey001"); code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
}

func TestBasicAuth_RejectsInvalidCredentials(t *testing.T) {
	mw := BasicAuth("LedgerAdmin", channelKeyHash(t, "LedgerKey001"))

	for _, credentials := range []string{"LedgerAdmin:WrongKey", "Someone:LedgerKey001", ""} {
		if code := basicAuthStatus(mw, credentials); code != http.StatusUnauthorized {
			t.Fatalf("credentials %q: expected status %d, got %d", credentials, http.StatusUnauthorized, code)
		}
	}
}

func TestBasicAuth_FailsClosedWithoutConfiguration(t *testing.T) {
	mw := BasicAuth("LedgerAdmin", "")

	if code := basicAuthStatus(mw, "LedgerAdmin:LedgerKey001"); code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, code)
	}
}

func TestBasicAuth_RejectionUsesEnvelope(t *testing.T) {
	mw := BasicAuth("LedgerAdmin", channelKeyHash(t, "LedgerKey001"))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("WWW-Authenticate"); got != adminRealm {
		t.Fatalf("expected challenge %q, got %q", adminRealm, got)
	}
	var body struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || len(body.Errors) != 1 || body.Errors[0] != "missing basic credentials" {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

package middleware

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const adminRealm = `Basic realm="ledger-admin"`

// BasicAuth guards the admin routes. The channel id is compared in constant
// time and the channel key is checked against a bcrypt hash, never stored in clear.
func BasicAuth(channelID, channelKeyHash string) func(http.Handler) http.Handler {
	hash := []byte(channelKeyHash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelID == "" || len(hash) == 0 {
				deny(w, r, http.StatusInternalServerError, "admin authentication unavailable", "channel credentials are not configured")
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", adminRealm)
				deny(w, r, http.StatusUnauthorized, "unauthorized", "missing basic credentials")
				return
			}
			idMatches := subtle.ConstantTimeCompare([]byte(id), []byte(channelID)) == 1
			// Always run bcrypt so a wrong id costs the same as a wrong key.
			keyMatches := bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil
			if !idMatches || !keyMatches {
				w.Header().Set("WWW-Authenticate", adminRealm)
				deny(w, r, http.StatusUnauthorized, "unauthorized", "invalid channel credentials")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

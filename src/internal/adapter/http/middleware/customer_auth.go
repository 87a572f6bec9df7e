package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

type customerKey struct{}

// CustomerClaims is the bearer token body. CustomerID identifies the caller.
type CustomerClaims struct {
	CustomerID int64 `json:"customerId"`
	jwt.RegisteredClaims
}

// CustomerAuth verifies an HS256 bearer token and stores its customer id on the request context.
func CustomerAuth(secret, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				deny(w, r, http.StatusInternalServerError, "customer authentication unavailable", "token secret is not configured")
				return
			}

			claims, err := parseCustomerToken(r.Header.Get("Authorization"), secret, issuer)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				deny(w, r, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), customerKey{}, claims.CustomerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerIDFromContext returns the caller set by CustomerAuth.
func CustomerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(customerKey{}).(int64)
	return id, ok
}

func parseCustomerToken(header, secret, issuer string) (*CustomerClaims, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, errors.New("missing bearer token")
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}

	claims := &CustomerClaims{}
	if _, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, options...); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.CustomerID <= 0 {
		return nil, errors.New("token carries no customer id")
	}
	return claims, nil
}

// IssueCustomerToken signs a bearer token for customerID valid for ttl.
func IssueCustomerToken(secret, issuer string, customerID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CustomerClaims{
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", customerID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        ulid.Make().String(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

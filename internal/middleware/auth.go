package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
	"github.com/nilgpt/nilgpt/backend/internal/session"
	"github.com/nilgpt/nilgpt/backend/pkg/utils"
)

const (
	// AdminKeyHeader carries the operator key that allows acting on any account.
	AdminKeyHeader = "X-Admin-Key"
	// ClientIDHeader identifies the browser for client state.
	ClientIDHeader = "X-Client-ID"
	// PrivyTokenCookie is the cookie the Privy SDK stores the access token in.
	PrivyTokenCookie = "privy-token"
)

type authKey int

const (
	accountKey authKey = iota
	adminKey
)

// Authenticate resolves the caller's session token, if any. Requests without
// a token pass through anonymously; a token that fails verification is 401.
func Authenticate(v session.Verifier, adminAPIKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if adminAPIKey != "" {
				if got := r.Header.Get(AdminKeyHeader); got != "" &&
					subtle.ConstantTimeCompare([]byte(got), []byte(adminAPIKey)) == 1 {
					ctx = context.WithValue(ctx, adminKey, true)
				}
			}

			token := bearerToken(r)
			if token == "" || v == nil {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			acct, err := v.Verify(ctx, token)
			if err != nil {
				logging.FromContext(ctx).Warn("session token rejected", slog.Any("err", err))
				utils.RespondError(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			ctx = context.WithValue(ctx, accountKey, acct)
			ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With(slog.String("provider", string(acct.Provider()))))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext returns the authenticated account, if any.
func AccountFromContext(ctx context.Context) (identity.Account, bool) {
	acct, ok := ctx.Value(accountKey).(identity.Account)
	return acct, ok && acct != nil
}

// IsAdmin reports whether the request presented a valid admin key.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminKey).(bool)
	return ok
}

// WithAccount returns ctx carrying acct, as Authenticate would.
func WithAccount(ctx context.Context, acct identity.Account) context.Context {
	return context.WithValue(ctx, accountKey, acct)
}

// WithAdmin marks ctx as carrying a valid admin key.
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey, true)
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(PrivyTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

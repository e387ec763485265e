package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
	"github.com/nilgpt/nilgpt/backend/internal/session"
)

type stubVerifier map[string]identity.Account

func (s stubVerifier) Verify(_ context.Context, token string) (identity.Account, error) {
	if acct, ok := s[token]; ok {
		return acct, nil
	}
	return nil, session.ErrInvalidToken
}

type seenRequest struct {
	acct  identity.Account
	admin bool
	hit   bool
}

func probe() (http.Handler, *seenRequest) {
	seen := &seenRequest{}
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.hit = true
		seen.acct, _ = AccountFromContext(r.Context())
		seen.admin = IsAdmin(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	return h, seen
}

func TestAuthenticate(t *testing.T) {
	supa := identity.SupabaseAccount{ID: "11111111-1111-1111-1111-111111111111"}
	privy := identity.PrivyAccount{DID: "did:privy:abc"}
	v := stubVerifier{"supa-token": supa, "privy-token": privy}

	tests := []struct {
		name      string
		prepare   func(r *http.Request)
		wantCode  int
		wantAcct  identity.Account
		wantAdmin bool
	}{
		{name: "anonymous", prepare: func(*http.Request) {}, wantCode: http.StatusNoContent},
		{
			name:     "bearer header",
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer supa-token") },
			wantCode: http.StatusNoContent,
			wantAcct: supa,
		},
		{
			name:     "privy cookie",
			prepare:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: PrivyTokenCookie, Value: "privy-token"}) },
			wantCode: http.StatusNoContent,
			wantAcct: privy,
		},
		{
			name:     "invalid token",
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer forged") },
			wantCode: http.StatusUnauthorized,
		},
		{
			name:      "admin key",
			prepare:   func(r *http.Request) { r.Header.Set(AdminKeyHeader, "sekret") },
			wantCode:  http.StatusNoContent,
			wantAdmin: true,
		},
		{
			name:     "wrong admin key",
			prepare:  func(r *http.Request) { r.Header.Set(AdminKeyHeader, "guess") },
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			next, seen := probe()
			h := Authenticate(v, "sekret")(next)

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(r)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			req.Equal(tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusUnauthorized {
				req.False(seen.hit)
				return
			}
			req.Equal(tt.wantAcct, seen.acct)
			req.Equal(tt.wantAdmin, seen.admin)
		})
	}
}

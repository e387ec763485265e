package authprovider

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
)

func TestSupabaseDeleteUser(t *testing.T) {
	req := require.New(t)
	var gotMethod, gotPath, gotKey, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotKey, gotAuth = r.Header.Get("apikey"), r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sb := NewSupabase(srv.URL+"/", "service-key", nil)
	req.NoError(sb.DeleteUser(context.Background(), "11111111-1111-1111-1111-111111111111"))

	req.Equal(http.MethodDelete, gotMethod)
	req.Equal("/auth/v1/admin/users/11111111-1111-1111-1111-111111111111", gotPath)
	req.Equal("service-key", gotKey)
	req.Equal("Bearer service-key", gotAuth)
}

func TestSupabaseDeleteUserFailure(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"msg":"User not found"}`))
	}))
	defer srv.Close()

	err := NewSupabase(srv.URL, "k", nil).DeleteUser(context.Background(), "11111111-1111-1111-1111-111111111111")

	var provErr *Error
	req.True(errors.As(err, &provErr))
	req.Equal(identity.ProviderSupabase, provErr.Provider)
	req.Equal(http.StatusNotFound, provErr.HTTPStatus())
	req.Equal("User not found", provErr.Message)
	req.ErrorIs(err, errs.ErrUpstream)
}

func TestPrivyDeleteUser(t *testing.T) {
	req := require.New(t)
	var gotPath, gotAuth, gotAppID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth, gotAppID = r.Header.Get("Authorization"), r.Header.Get("privy-app-id")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p := NewPrivy(srv.URL, "app-id", "app-secret", nil)
	req.NoError(p.DeleteUser(context.Background(), "did:privy:abc123"))

	req.Equal("/v1/users/did:privy:abc123", gotPath)
	req.Equal("Basic "+base64.StdEncoding.EncodeToString([]byte("app-id:app-secret")), gotAuth)
	req.Equal("app-id", gotAppID)
}

func TestPrivyDeleteUserFailureKeepsStatus(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewPrivy(srv.URL, "app-id", "bad", nil).DeleteUser(context.Background(), "did:privy:abc123")

	var provErr *Error
	req.True(errors.As(err, &provErr))
	req.Equal(http.StatusUnauthorized, provErr.HTTPStatus())
	req.Equal("Unauthorized", provErr.Message)
}

func TestTransportFailureMapsTo500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewPrivy(url, "a", "b", nil).DeleteUser(context.Background(), "did:privy:abc")

	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	require.Equal(t, 0, provErr.Status)
	require.Equal(t, http.StatusInternalServerError, provErr.HTTPStatus())
}

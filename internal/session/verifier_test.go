package session

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
)

const supabaseSecret = "super-secret-jwt-token-with-at-least-32-characters-long"

func signHS256(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString([]byte(supabaseSecret))
	require.NoError(t, err)
	return signed
}

func privyKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func signES256(t *testing.T, key *ecdsa.PrivateKey, sub, aud string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    PrivyIssuer,
		Audience:  jwt.ClaimStrings{aud},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestSupabaseVerifier(t *testing.T) {
	req := require.New(t)
	v := NewSupabaseVerifier(supabaseSecret)
	sub := "11111111-1111-1111-1111-111111111111"

	acct, err := v.Verify(context.Background(), signHS256(t, sub, time.Now().Add(time.Hour)))
	req.NoError(err)
	req.Equal(identity.SupabaseAccount{ID: sub}, acct)

	_, err = v.Verify(context.Background(), signHS256(t, sub, time.Now().Add(-time.Hour)))
	req.ErrorIs(err, ErrInvalidToken)
	req.ErrorIs(err, errs.ErrUnauthorized)

	_, err = v.Verify(context.Background(), signHS256(t, "did:privy:abc", time.Now().Add(time.Hour)))
	req.ErrorIs(err, ErrInvalidToken)
}

func TestPrivyVerifier(t *testing.T) {
	req := require.New(t)
	key, pemKey := privyKey(t)

	v, err := NewPrivyVerifier(pemKey, "app-id")
	req.NoError(err)

	acct, err := v.Verify(context.Background(), signES256(t, key, "did:privy:abc123", "app-id"))
	req.NoError(err)
	req.Equal(identity.PrivyAccount{DID: "did:privy:abc123"}, acct)

	_, err = v.Verify(context.Background(), signES256(t, key, "did:privy:abc123", "other-app"))
	req.ErrorIs(err, ErrInvalidToken)

	other, _ := privyKey(t)
	_, err = v.Verify(context.Background(), signES256(t, other, "did:privy:abc123", "app-id"))
	req.ErrorIs(err, ErrInvalidToken)
}

func TestNewPrivyVerifierRejectsGarbage(t *testing.T) {
	_, err := NewPrivyVerifier("not a pem", "app")
	require.Error(t, err)
}

func TestChain(t *testing.T) {
	req := require.New(t)
	key, pemKey := privyKey(t)
	pv, err := NewPrivyVerifier(pemKey, "app-id")
	req.NoError(err)
	chain := Chain{NewSupabaseVerifier(supabaseSecret), pv}

	acct, err := chain.Verify(context.Background(), signES256(t, key, "did:privy:xyz", "app-id"))
	req.NoError(err)
	req.Equal(identity.ProviderPrivy, acct.Provider())

	acct, err = chain.Verify(context.Background(), signHS256(t, "11111111-1111-1111-1111-111111111111", time.Now().Add(time.Minute)))
	req.NoError(err)
	req.Equal(identity.ProviderSupabase, acct.Provider())

	_, err = chain.Verify(context.Background(), "garbage")
	req.ErrorIs(err, ErrInvalidToken)

	_, err = Chain{}.Verify(context.Background(), "anything")
	req.ErrorIs(err, ErrInvalidToken)
}

// Package session verifies the bearer tokens issued by the identity providers.
package session

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
)

var ErrInvalidToken = fmt.Errorf("invalid or expired session token: %w", errs.ErrUnauthorized)

// Verifier resolves a bearer token to the account it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (identity.Account, error)
}

// SupabaseVerifier checks HS256 access tokens signed with the project JWT secret.
type SupabaseVerifier struct {
	secret []byte
}

func NewSupabaseVerifier(secret string) *SupabaseVerifier {
	return &SupabaseVerifier{secret: []byte(secret)}
}

func (v *SupabaseVerifier) Verify(_ context.Context, token string) (identity.Account, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return subjectAccount(claims.Subject, identity.ProviderSupabase)
}

// PrivyIssuer is the iss claim of Privy access tokens.
const PrivyIssuer = "privy.io"

// PrivyVerifier checks ES256 access tokens against the app verification key.
type PrivyVerifier struct {
	key   *ecdsa.PublicKey
	appID string
}

// NewPrivyVerifier parses the PEM encoded verification key from the Privy dashboard.
func NewPrivyVerifier(pemKey, appID string) (*PrivyVerifier, error) {
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("parse privy verification key: %w", err)
	}
	return &PrivyVerifier{key: key, appID: appID}, nil
}

func (v *PrivyVerifier) Verify(_ context.Context, token string) (identity.Account, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithIssuer(PrivyIssuer),
		jwt.WithAudience(v.appID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return subjectAccount(claims.Subject, identity.ProviderPrivy)
}

// Chain tries each verifier in order and returns the first success.
type Chain []Verifier

func (c Chain) Verify(ctx context.Context, token string) (identity.Account, error) {
	if len(c) == 0 {
		return nil, ErrInvalidToken
	}
	var failures []error
	for _, v := range c {
		acct, err := v.Verify(ctx, token)
		if err == nil {
			return acct, nil
		}
		failures = append(failures, err)
	}
	return nil, errors.Join(failures...)
}

func subjectAccount(sub string, want identity.Provider) (identity.Account, error) {
	acct, err := identity.Parse(sub)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if acct.Provider() != want {
		return nil, fmt.Errorf("%s token carries a %s subject: %w", want, acct.Provider(), ErrInvalidToken)
	}
	return acct, nil
}

// Package identity models the two account providers and the record keys
// derived from their identifiers.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
)

// Provider names the identity provider that owns an account.
type Provider string

const (
	ProviderSupabase Provider = "supabase"
	ProviderPrivy    Provider = "privy"
)

// Title is the display form used in user facing messages.
func (p Provider) Title() string {
	switch p {
	case ProviderSupabase:
		return "Supabase"
	case ProviderPrivy:
		return "Privy"
	default:
		return string(p)
	}
}

// PrivyDIDPrefix prefixes every Privy user identifier.
const PrivyDIDPrefix = "did:privy:"

var (
	uuidPattern     = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	privyDIDPattern = regexp.MustCompile(`^did:privy:[A-Za-z0-9]+$`)
)

var (
	ErrMissingNamespace  = fmt.Errorf("SALT environment variable is not set: %w", errs.ErrConfig)
	ErrInvalidIdentifier = fmt.Errorf("user id must be a UUID or a %s identifier: %w", PrivyDIDPrefix, errs.ErrInvalidInput)
)

// Account is an identifier resolved to its owning provider.
// The only implementations are SupabaseAccount and PrivyAccount.
type Account interface {
	Provider() Provider
	// UserID is the raw identifier issued by the provider.
	UserID() string
	// RecordKey is the _id of the account's user record in nilDB.
	RecordKey(namespace uuid.UUID) string
	sealed()
}

// SupabaseAccount is a Supabase auth user, identified by a UUID.
type SupabaseAccount struct {
	ID string
}

func (a SupabaseAccount) Provider() Provider { return ProviderSupabase }
func (a SupabaseAccount) UserID() string     { return a.ID }

// RecordKey is the raw Supabase id; the namespace is not used.
func (a SupabaseAccount) RecordKey(uuid.UUID) string { return a.ID }

func (SupabaseAccount) sealed() {}

// PrivyAccount is a Privy user, identified by a did:privy: string.
type PrivyAccount struct {
	DID string
}

func (a PrivyAccount) Provider() Provider { return ProviderPrivy }
func (a PrivyAccount) UserID() string     { return a.DID }

// RecordKey is the name-based (v5) UUID of the DID within namespace.
func (a PrivyAccount) RecordKey(namespace uuid.UUID) string {
	return uuid.NewSHA1(namespace, []byte(a.DID)).String()
}

func (PrivyAccount) sealed() {}

// Parse resolves a raw identifier by its shape.
func Parse(raw string) (Account, error) {
	id := strings.TrimSpace(raw)
	switch {
	case uuidPattern.MatchString(id):
		return SupabaseAccount{ID: id}, nil
	case privyDIDPattern.MatchString(id):
		return PrivyAccount{DID: id}, nil
	default:
		return nil, ErrInvalidIdentifier
	}
}

// ParseNamespace validates the configured derivation namespace.
func ParseNamespace(salt string) (uuid.UUID, error) {
	salt = strings.TrimSpace(salt)
	if salt == "" {
		return uuid.Nil, ErrMissingNamespace
	}
	ns, err := uuid.Parse(salt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("SALT must be a UUID namespace: %w", errors.Join(errs.ErrConfig, err))
	}
	return ns, nil
}

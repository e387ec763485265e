package identity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
)

var testNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func TestParseSupabaseUUID(t *testing.T) {
	req := require.New(t)
	ids := []string{
		"11111111-1111-1111-1111-111111111111",
		"3F2504E0-4F89-11D3-9A0C-0305E82C3301",
		"a8098c1a-f86e-11da-bd1a-00112444be1e",
	}

	for _, raw := range ids {
		acct, err := Parse(raw)
		req.NoError(err)
		req.Equal(ProviderSupabase, acct.Provider())
		req.Equal(raw, acct.UserID())
		req.Equal(raw, acct.RecordKey(testNamespace))
	}
}

func TestParsePrivyDID(t *testing.T) {
	req := require.New(t)
	raw := "did:privy:cm3np4u9j00pl12x0ux6yzmj8"

	acct, err := Parse(raw)
	req.NoError(err)
	req.Equal(ProviderPrivy, acct.Provider())
	req.Equal(raw, acct.UserID())

	key := acct.RecordKey(testNamespace)
	req.Equal(key, acct.RecordKey(testNamespace), "derivation must be deterministic")
	req.NotEqual(raw, key)

	parsed, err := uuid.Parse(key)
	req.NoError(err)
	req.Equal(uuid.Version(5), parsed.Version())

	other := uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
	req.NotEqual(key, acct.RecordKey(other))
}

func TestPrivyRecordKeyMatchesKnownVector(t *testing.T) {
	// uuidv5("www.example.com", DNS namespace)
	acct := PrivyAccount{DID: "www.example.com"}
	require.Equal(t, "2ed6657d-e927-568b-95e1-2665a8aea6a2", acct.RecordKey(uuid.NameSpaceDNS))
}

func TestParseRejectsUnknownShapes(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"not-an-id",
		"11111111-1111-1111-1111-11111111111",
		"did:privy:",
		"did:other:abc",
		"did:privy:abc/../admin",
	} {
		_, err := Parse(raw)
		require.ErrorIs(t, err, ErrInvalidIdentifier, raw)
		require.True(t, errors.Is(err, errs.ErrInvalidInput), raw)
	}
}

func TestParseNamespace(t *testing.T) {
	req := require.New(t)

	_, err := ParseNamespace("")
	req.ErrorIs(err, ErrMissingNamespace)
	req.ErrorIs(err, errs.ErrConfig)

	_, err = ParseNamespace("pepper")
	req.ErrorIs(err, errs.ErrConfig)

	ns, err := ParseNamespace(" 6ba7b810-9dad-11d1-80b4-00c04fd430c8 ")
	req.NoError(err)
	req.Equal(testNamespace, ns)
}

func TestProviderTitle(t *testing.T) {
	require.Equal(t, "Supabase", ProviderSupabase.Title())
	require.Equal(t, "Privy", ProviderPrivy.Title())
}

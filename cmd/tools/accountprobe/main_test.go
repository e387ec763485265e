package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilgpt/nilgpt/backend/internal/config"
	"github.com/nilgpt/nilgpt/backend/internal/errs"
)

func TestRun(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	err := run(context.Background(), &buf, "did:privy:www", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false, config.NilDBConfig{})
	req.NoError(err)

	var got probe
	req.NoError(json.Unmarshal(buf.Bytes(), &got))
	req.Equal("privy", string(got.Provider))
	req.Equal("did:privy:www", got.UserID)
	req.Len(got.RecordKey, 36)
	req.Nil(got.Found)
}

func TestRunRejectsInvalidInput(t *testing.T) {
	var buf bytes.Buffer
	err := run(context.Background(), &buf, "someone@example.com", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false, config.NilDBConfig{})
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	err = run(context.Background(), &buf, "11111111-1111-1111-1111-111111111111", "", false, config.NilDBConfig{})
	require.ErrorIs(t, err, errs.ErrConfig)
	require.Zero(t, buf.Len())
}

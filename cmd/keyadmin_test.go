// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"bytes"
	"context"
	"errors"
	"jobs-api/commons"
	"jobs-api/db/dbtest"
	"jobs-api/repository"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *repository.APIKeyRepository {
	t.Helper()
	return repository.NewAPIKeyRepository(dbtest.New(t), dbtest.Crypto(), "sk_live")
}

var keyPattern = regexp.MustCompile(`API key:\s+(sk_live_\S+)`)

func TestCreateListRevoke(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	var out bytes.Buffer

	err := run(ctx, store, []string{"create", "--name", "Ada", "--email", "Ada@X.com", "--company", "Engines", "--rate-limit", "50", "--expires-at", "2030-01-31"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Rate limit: 50 requests/hour")
	assert.Contains(t, out.String(), "Expires:    2030-01-31")
	require.Regexp(t, keyPattern, out.String())

	out.Reset()
	err = run(ctx, store, []string{"create", "--name", "Ada", "--email", "ada@x.com"}, &out)
	var conflict *commons.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Contains(t, err.Error(), "already has an active API key")

	out.Reset()
	require.NoError(t, run(ctx, store, []string{"list"}, &out))
	assert.Contains(t, out.String(), "ada@x.com")
	assert.Contains(t, out.String(), "Total: 1 key(s)")

	principal, err := store.FindByEmail(ctx, "ada@x.com")
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, run(ctx, store, []string{"revoke", "--id", "1"}, &out))
	assert.Contains(t, out.String(), "API key #1 has been revoked")
	assert.EqualValues(t, 1, principal.ID)

	out.Reset()
	require.NoError(t, run(ctx, store, []string{"list"}, &out))
	assert.Contains(t, out.String(), "No API keys found.")

	out.Reset()
	require.NoError(t, run(ctx, store, []string{"list", "--all", "--email", "ADA@x.com"}, &out))
	assert.Contains(t, out.String(), "Total: 1 key(s)")

	out.Reset()
	require.NoError(t, run(ctx, store, []string{"history", "--id", "1"}, &out))
	assert.Contains(t, out.String(), "ISSUED")
	assert.Contains(t, out.String(), "REVOKED")

	out.Reset()
	err = run(ctx, store, []string{"revoke", "--id", "99"}, &out)
	var notFound *commons.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUsageErrors(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, args := range [][]string{
		nil,
		{"rotate"},
		{"create", "--name", "Ada"},
		{"create", "--bogus"},
		{"revoke"},
		{"history"},
	} {
		var out bytes.Buffer
		err := run(ctx, store, args, &out)
		assert.ErrorIs(t, err, errUsage, "args %v", args)
	}

	var out bytes.Buffer
	err := run(ctx, store, []string{"create", "--name", "Ada", "--email", "ada@x.com", "--expires-at", "31/01/2030"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")

	out.Reset()
	require.NoError(t, run(ctx, store, []string{"list", "--env-file", "ignored.env"}, &out))
}

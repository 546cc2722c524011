// SPDX-License-Identifier: GPL-3.0-only

package auth

import (
	"context"
	"errors"
	"jobs-api/commons"
	"jobs-api/db/dbtest"
	"jobs-api/repository"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T) (*Verifier, *repository.APIKeyRepository) {
	t.Helper()
	c := dbtest.Crypto()
	keys := repository.NewAPIKeyRepository(dbtest.New(t), c, "sk_live")
	return NewVerifier(keys, c), keys
}

func TestVerify_IssuedKeyResolvesToOwner(t *testing.T) {
	v, keys := newTestVerifier(t)
	ctx := context.Background()

	issued, plaintext, err := keys.Issue(ctx, repository.IssueParams{Name: "Ada", Email: "ada@x.com"})
	require.NoError(t, err)

	principal, err := v.Verify(ctx, plaintext)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, principal.ID)
	assert.Equal(t, "ada@x.com", principal.Email)
	assert.EqualValues(t, 1, principal.RequestCount)
	require.NotNil(t, principal.LastUsedAt)

	principal, err = v.Verify(ctx, plaintext)
	require.NoError(t, err)
	assert.EqualValues(t, 2, principal.RequestCount)

	stored, err := keys.Get(ctx, issued.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stored.RequestCount)
	assert.NotNil(t, stored.LastUsedAt)
}

func TestVerify_Rejections(t *testing.T) {
	v, keys := newTestVerifier(t)
	ctx := context.Background()

	issued, plaintext, err := keys.Issue(ctx, repository.IssueParams{Name: "Ada", Email: "ada@x.com"})
	require.NoError(t, err)

	tampered := plaintext[:len(plaintext)-1] + "A"
	if tampered == plaintext {
		tampered = plaintext[:len(plaintext)-1] + "B"
	}

	for name, presented := range map[string]string{
		"empty":          "",
		"unknown prefix": "sk_test_nothing-like-this",
		"wrong secret":   tampered,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(ctx, presented)
			var unauthorized *commons.UnauthorizedError
			assert.ErrorAs(t, err, &unauthorized)
		})
	}

	ok, err := keys.Revoke(ctx, issued.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = v.Verify(ctx, plaintext)
	var unauthorized *commons.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)

	stored, err := keys.Get(ctx, issued.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stored.RequestCount)
}

func TestVerify_ExpiredKey(t *testing.T) {
	v, keys := newTestVerifier(t)
	ctx := context.Background()

	expires := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, plaintext, err := keys.Issue(ctx, repository.IssueParams{Name: "Ada", Email: "ada@x.com", ExpiresAt: &expires})
	require.NoError(t, err)

	v.now = func() time.Time { return expires.Add(-time.Hour) }
	_, err = v.Verify(ctx, plaintext)
	require.NoError(t, err)

	v.now = func() time.Time { return expires.Add(time.Hour) }
	_, err = v.Verify(ctx, plaintext)
	var unauthorized *commons.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestVerifyOptional(t *testing.T) {
	v, keys := newTestVerifier(t)
	ctx := context.Background()

	_, plaintext, err := keys.Issue(ctx, repository.IssueParams{Name: "Ada", Email: "ada@x.com"})
	require.NoError(t, err)

	assert.Nil(t, v.VerifyOptional(ctx, ""))
	assert.Nil(t, v.VerifyOptional(ctx, "sk_live_bogus"))
	principal := v.VerifyOptional(ctx, plaintext)
	require.NotNil(t, principal)
	assert.Equal(t, "Ada", principal.Name)
}

type failingStore struct{}

func (failingStore) ActiveCredentials(context.Context, string) ([]repository.Credential, error) {
	return nil, commons.NewStoreError("load credentials", errors.New("connection refused"))
}

func (failingStore) RecordUsage(context.Context, uint, time.Time) error {
	return nil
}

func (failingStore) Get(context.Context, uint) (*repository.Principal, error) {
	return nil, nil
}

func TestVerify_StoreFailure(t *testing.T) {
	v := NewVerifier(failingStore{}, dbtest.Crypto())

	_, err := v.Verify(context.Background(), "sk_live_whatever")
	var storeErr *commons.StoreError
	assert.ErrorAs(t, err, &storeErr)

	assert.Nil(t, v.VerifyOptional(context.Background(), "sk_live_whatever"))
}

func TestVerify_ConcurrentUsesReportStoredCount(t *testing.T) {
	v, keys := newTestVerifier(t)
	ctx := context.Background()

	issued, plaintext, err := keys.Issue(ctx, repository.IssueParams{Name: "Ada", Email: "ada@x.com"})
	require.NoError(t, err)

	const callers = 8
	counts := make([]int64, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := v.Verify(ctx, plaintext)
			errs[i] = err
			if p != nil {
				counts[i] = p.RequestCount
			}
		}(i)
	}
	wg.Wait()

	seen := map[int64]bool{}
	for i := range errs {
		require.NoError(t, errs[i])
		assert.GreaterOrEqual(t, counts[i], int64(1))
		assert.LessOrEqual(t, counts[i], int64(callers))
		seen[counts[i]] = true
	}
	assert.True(t, seen[callers], "the last use sees every increment: %v", counts)

	stored, err := keys.Get(ctx, issued.ID)
	require.NoError(t, err)
	assert.EqualValues(t, callers, stored.RequestCount)
}

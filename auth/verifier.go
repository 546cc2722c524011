// SPDX-License-Identifier: GPL-3.0-only

package auth

import (
	"context"
	"errors"
	"jobs-api/commons"
	"jobs-api/crypto"
	"jobs-api/repository"
	"time"
)

// CredentialStore is the subset of the key repository the verifier needs.
type CredentialStore interface {
	ActiveCredentials(ctx context.Context, prefix string) ([]repository.Credential, error)
	RecordUsage(ctx context.Context, id uint, at time.Time) error
	Get(ctx context.Context, id uint) (*repository.Principal, error)
}

// Verifier resolves presented plaintext keys into principals.
type Verifier struct {
	store  CredentialStore
	crypto *crypto.Crypto
	now    func() time.Time
}

func NewVerifier(store CredentialStore, c *crypto.Crypto) *Verifier {
	return &Verifier{
		store:  store,
		crypto: c,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Verify returns the principal owning presented and records the use. The
// principal is read back after the usage update, so its counters are the
// stored values.
//
// Candidates are narrowed by display prefix, which is not secret; every
// candidate is then checked against its argon2id hash. Expired keys never
// match. Failures are reported as UnauthorizedError without saying why to
// the caller.
func (v *Verifier) Verify(ctx context.Context, presented string) (*repository.Principal, error) {
	if presented == "" {
		return nil, &commons.UnauthorizedError{Reason: "missing api key"}
	}

	creds, err := v.store.ActiveCredentials(ctx, crypto.DisplayPrefix(presented))
	if err != nil {
		return nil, err
	}

	now := v.now()
	for _, cred := range creds {
		if cred.Principal.ExpiresAt != nil && !cred.Principal.ExpiresAt.After(now) {
			continue
		}
		if err := v.crypto.VerifySecret(presented, cred.KeyHash); err != nil {
			continue
		}
		if err := v.store.RecordUsage(ctx, cred.Principal.ID, now); err != nil {
			return nil, err
		}
		principal, err := v.store.Get(ctx, cred.Principal.ID)
		if err != nil {
			return nil, err
		}
		if principal == nil || !principal.IsActive {
			return nil, &commons.UnauthorizedError{Reason: "key revoked during verification"}
		}
		return principal, nil
	}

	return nil, &commons.UnauthorizedError{Reason: "no matching active key"}
}

// VerifyOptional is Verify without failures: a missing or invalid key yields nil.
func (v *Verifier) VerifyOptional(ctx context.Context, presented string) *repository.Principal {
	if presented == "" {
		return nil
	}
	principal, err := v.Verify(ctx, presented)
	if err != nil {
		var storeErr *commons.StoreError
		if errors.As(err, &storeErr) {
			commons.Logger.Warn("Optional API key verification failed: ", storeErr)
		}
		return nil
	}
	return principal
}

// SPDX-License-Identifier: GPL-3.0-only

package repository

import (
	"context"
	"errors"
	"jobs-api/commons"
	"jobs-api/crypto"
	"jobs-api/models"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultRateLimit = 1000

// APIKeyRepository is the credential store. Plaintext keys are returned once by
// Issue and never persisted.
type APIKeyRepository struct {
	db        *gorm.DB
	crypto    *crypto.Crypto
	keyPrefix string
	now       func() time.Time
}

func NewAPIKeyRepository(db *gorm.DB, c *crypto.Crypto, keyPrefix string) *APIKeyRepository {
	return &APIKeyRepository{
		db:        db,
		crypto:    c,
		keyPrefix: keyPrefix,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type IssueParams struct {
	Name      string
	Email     string
	Company   *string
	RateLimit int
	ExpiresAt *time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Issue creates a new active key for the owner. It fails with ConflictError
// when the email already owns an active key.
func (r *APIKeyRepository) Issue(ctx context.Context, p IssueParams) (*Principal, string, error) {
	name := strings.TrimSpace(p.Name)
	email := normalizeEmail(p.Email)
	if name == "" {
		return nil, "", &commons.InvalidInputError{Field: "name", Message: "name is required"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", &commons.InvalidInputError{Field: "email", Message: "a valid email is required"}
	}
	rateLimit := p.RateLimit
	if rateLimit == 0 {
		rateLimit = DefaultRateLimit
	}
	if rateLimit < 0 {
		return nil, "", &commons.InvalidInputError{Field: "rate_limit", Message: "rate limit must be positive"}
	}

	plaintext, err := crypto.GenerateAPIKey(r.keyPrefix)
	if err != nil {
		return nil, "", err
	}
	hash, err := r.crypto.HashSecret(plaintext)
	if err != nil {
		return nil, "", err
	}

	row := models.APIKey{
		KeyHash:   hash,
		KeyPrefix: crypto.DisplayPrefix(plaintext),
		Name:      name,
		Email:     email,
		Company:   p.Company,
		IsActive:  true,
		CreatedAt: r.now(),
		ExpiresAt: p.ExpiresAt,
		RateLimit: rateLimit,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflict := &commons.ConflictError{Message: "Email '" + email + "' already has an active API key"}
		// The partial unique index on active emails is the backstop; the
		// locking read serializes issuers on mysql, which has no such index.
		var active []uint
		if err := tx.Model(&models.APIKey{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ? AND is_active = ?", email, true).
			Limit(1).
			Pluck("id", &active).Error; err != nil {
			return commons.NewStoreError("find active keys", err)
		}
		if len(active) > 0 {
			return conflict
		}
		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict
			}
			return commons.NewStoreError("create api key", err)
		}
		return recordEvent(tx, row.ID, models.KeyIssued, "issued to "+email)
	})
	if err != nil {
		return nil, "", err
	}

	commons.Logger.Infof("API key #%d issued with prefix %s", row.ID, row.KeyPrefix)
	principal := toPrincipal(row)
	return &principal, plaintext, nil
}

// FindByEmail returns the active principal for email, or nil.
func (r *APIKeyRepository) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	var rows []models.APIKey
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", normalizeEmail(email), true).
		Order("id").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, commons.NewStoreError("find api key by email", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := toPrincipal(rows[0])
	return &p, nil
}

func (r *APIKeyRepository) Get(ctx context.Context, id uint) (*Principal, error) {
	var rows []models.APIKey
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, commons.NewStoreError("get api key", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := toPrincipal(rows[0])
	return &p, nil
}

// List returns principals in creation order.
func (r *APIKeyRepository) List(ctx context.Context, includeInactive bool) ([]Principal, error) {
	query := r.db.WithContext(ctx).Model(&models.APIKey{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.APIKey
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, commons.NewStoreError("list api keys", err)
	}
	principals := make([]Principal, 0, len(rows))
	for _, row := range rows {
		principals = append(principals, toPrincipal(row))
	}
	return principals, nil
}

// Revoke deactivates a key. It reports false only when no key has that id;
// revoking an inactive key is a successful no-op.
func (r *APIKeyRepository) Revoke(ctx context.Context, id uint) (bool, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.APIKey{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return commons.NewStoreError("find api key", err)
		}
		if count == 0 {
			return nil
		}
		found = true
		result := tx.Model(&models.APIKey{}).
			Where("id = ? AND is_active = ?", id, true).
			Update("is_active", false)
		if result.Error != nil {
			return commons.NewStoreError("deactivate api key", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return recordEvent(tx, id, models.KeyRevoked, "")
	})
	if err != nil {
		return false, err
	}
	if found {
		commons.Logger.Infof("API key #%d revoked", id)
	}
	return found, nil
}

// RecordUsage increments the request counter and stamps last use in one statement.
func (r *APIKeyRepository) RecordUsage(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.APIKey{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"request_count": gorm.Expr("request_count + ?", 1),
			"last_used_at":  at,
		})
	if result.Error != nil {
		return commons.NewStoreError("record api key usage", result.Error)
	}
	if result.RowsAffected == 0 {
		return &commons.NotFoundError{Resource: "API key", ID: strconv.FormatUint(uint64(id), 10)}
	}
	return nil
}

// ActiveCredentials returns active keys whose display prefix equals prefix,
// hashes included. It exists for the key verifier only.
func (r *APIKeyRepository) ActiveCredentials(ctx context.Context, prefix string) ([]Credential, error) {
	var rows []models.APIKey
	err := r.db.WithContext(ctx).
		Where("key_prefix = ? AND is_active = ?", prefix, true).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, commons.NewStoreError("load active credentials", err)
	}
	creds := make([]Credential, 0, len(rows))
	for _, row := range rows {
		creds = append(creds, Credential{Principal: toPrincipal(row), KeyHash: row.KeyHash})
	}
	return creds, nil
}

func recordEvent(tx *gorm.DB, keyID uint, eventType models.KeyEventType, description string) error {
	event := models.APIKeyEvent{APIKeyID: keyID, Type: eventType}
	if description != "" {
		event.Description = &description
	}
	if err := tx.Create(&event).Error; err != nil {
		return commons.NewStoreError("record api key event", err)
	}
	return nil
}

// History returns the lifecycle events of a key, oldest first.
func (r *APIKeyRepository) History(ctx context.Context, id uint) ([]KeyEvent, error) {
	var rows []models.APIKeyEvent
	err := r.db.WithContext(ctx).
		Where("api_key_id = ?", id).
		Order("created_at").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, commons.NewStoreError("load api key history", err)
	}
	events := make([]KeyEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, toKeyEvent(row))
	}
	return events, nil
}

// SPDX-License-Identifier: GPL-3.0-only

package repository

import (
	"context"
	"errors"
	"jobs-api/commons"
	"jobs-api/models"
	"time"

	"gorm.io/gorm"
)

// FavoriteRepository stores per-key bookmarks of job listings. Each
// (key, job) pair has at most one row.
type FavoriteRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Add bookmarks jobID for the principal. Adding an existing pair returns the
// existing row, with notes replaced when notes is non-nil.
func (r *FavoriteRepository) Add(ctx context.Context, principalID uint, jobID string, notes *string) (*Favorite, error) {
	fav, err := r.upsert(ctx, principalID, jobID, notes)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent Add for the same pair won the insert.
		fav, err = r.upsert(ctx, principalID, jobID, notes)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, commons.NewStoreError("add favorite", err)
	}
	return fav, err
}

func (r *FavoriteRepository) upsert(ctx context.Context, principalID uint, jobID string, notes *string) (*Favorite, error) {
	var row models.FavoriteJob
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := jobExists(tx, jobID)
		if err != nil {
			return commons.NewStoreError("check job exists", err)
		}
		if !exists {
			return &commons.NotFoundError{Resource: "Job", ID: jobID}
		}

		var existing []models.FavoriteJob
		if err := tx.Where("api_key_id = ? AND job_id = ?", principalID, jobID).Limit(1).Find(&existing).Error; err != nil {
			return commons.NewStoreError("find favorite", err)
		}

		if len(existing) > 0 {
			row = existing[0]
			if notes != nil {
				if err := tx.Model(&row).Update("notes", *notes).Error; err != nil {
					return commons.NewStoreError("update favorite notes", err)
				}
				row.Notes = notes
			}
		} else {
			row = models.FavoriteJob{
				APIKeyID:  principalID,
				JobID:     jobID,
				CreatedAt: r.now(),
				Notes:     notes,
			}
			if err := tx.Create(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
				return commons.NewStoreError("create favorite", err)
			}
		}

		if err := tx.Where("job_id = ?", jobID).First(&row.Job).Error; err != nil {
			return commons.NewStoreError("load favorite job", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fav := toFavorite(row)
	return &fav, nil
}

// Remove deletes the pair and reports whether it existed.
func (r *FavoriteRepository) Remove(ctx context.Context, principalID uint, jobID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("api_key_id = ? AND job_id = ?", principalID, jobID).
		Delete(&models.FavoriteJob{})
	if result.Error != nil {
		return false, commons.NewStoreError("remove favorite", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// List returns the principal's favorites, newest first. Favorites whose
// listing no longer exists are skipped.
func (r *FavoriteRepository) List(ctx context.Context, principalID uint, skip, limit int) ([]Favorite, error) {
	if err := commons.ValidatePage(skip, limit); err != nil {
		return nil, err
	}

	var rows []models.FavoriteJob
	err := r.db.WithContext(ctx).
		Select("favorite_jobs.*").
		Joins("JOIN job_listings ON job_listings.job_id = favorite_jobs.job_id").
		Preload("Job").
		Where("favorite_jobs.api_key_id = ?", principalID).
		Order("favorite_jobs.created_at DESC").
		Order("favorite_jobs.id DESC").
		Offset(skip).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, commons.NewStoreError("list favorites", err)
	}

	favorites := make([]Favorite, 0, len(rows))
	for _, row := range rows {
		favorites = append(favorites, toFavorite(row))
	}
	return favorites, nil
}

// Status reports whether the pair exists. Unknown jobs are simply not favorited.
func (r *FavoriteRepository) Status(ctx context.Context, principalID uint, jobID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FavoriteJob{}).
		Where("api_key_id = ? AND job_id = ?", principalID, jobID).
		Count(&count).Error
	if err != nil {
		return false, commons.NewStoreError("favorite status", err)
	}
	return count > 0, nil
}

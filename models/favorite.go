// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

// FavoriteJob links an API key to a job listing. The job reference is weak:
// the ingestion process may remove the listing later.
type FavoriteJob struct {
	ID        uint   `gorm:"primaryKey"`
	APIKeyID  uint   `gorm:"column:api_key_id;not null;uniqueIndex:idx_favorite_key_job"`
	JobID     string `gorm:"size:255;not null;uniqueIndex:idx_favorite_key_job;index"`
	CreatedAt time.Time
	Notes     *string    `gorm:"type:text;default:null"`
	Job       JobListing `gorm:"foreignKey:JobID;references:JobID"`
}

func (FavoriteJob) TableName() string {
	return "favorite_jobs"
}

func init() {
	AllModels = append(AllModels, &FavoriteJob{})
}

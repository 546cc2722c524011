// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

type APIKey struct {
	ID           uint    `gorm:"primaryKey"`
	KeyHash      string  `gorm:"size:255;not null;uniqueIndex"`
	KeyPrefix    string  `gorm:"size:32;not null;index"`
	Name         string  `gorm:"size:255;not null"`
	Email        string  `gorm:"size:255;not null;index"`
	Company      *string `gorm:"size:255;default:null"`
	IsActive     bool    `gorm:"not null;default:true;index"`
	CreatedAt    time.Time
	LastUsedAt   *time.Time
	ExpiresAt    *time.Time
	RateLimit    int   `gorm:"not null;default:1000"`
	RequestCount int64 `gorm:"not null;default:0"`
}

func init() {
	AllModels = append(AllModels, &APIKey{})
}

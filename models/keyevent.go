// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KeyEventType string

const (
	KeyIssued  KeyEventType = "ISSUED"
	KeyRevoked KeyEventType = "REVOKED"
)

// APIKeyEvent is an append-only audit record of key lifecycle changes.
type APIKeyEvent struct {
	ID          uint         `gorm:"primaryKey"`
	EID         uuid.UUID    `gorm:"size:36;not null;uniqueIndex"`
	APIKeyID    uint         `gorm:"column:api_key_id;not null;index"`
	Type        KeyEventType `gorm:"size:20;not null"`
	Description *string      `gorm:"type:text;default:null"`
	CreatedAt   time.Time
}

func (APIKeyEvent) TableName() string {
	return "api_key_events"
}

func (event *APIKeyEvent) BeforeCreate(tx *gorm.DB) (err error) {
	event.EID = uuid.New()
	return
}

func init() {
	AllModels = append(AllModels, &APIKeyEvent{})
}

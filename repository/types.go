// SPDX-License-Identifier: GPL-3.0-only

package repository

import (
	"jobs-api/models"
	"time"
)

// Principal is the identity behind an API key. It never carries the key hash.
type Principal struct {
	ID           uint
	KeyPrefix    string
	Name         string
	Email        string
	Company      *string
	IsActive     bool
	CreatedAt    time.Time
	LastUsedAt   *time.Time
	ExpiresAt    *time.Time
	RateLimit    int
	RequestCount int64
}

// Credential pairs a principal with its stored hash. Only the verification
// path receives one.
type Credential struct {
	Principal Principal
	KeyHash   string
}

// KeyEvent is one entry of a key's audit trail.
type KeyEvent struct {
	ID          string
	KeyID       uint
	Type        string
	Description *string
	CreatedAt   time.Time
}

type Job struct {
	JobID                string
	Title                string
	JobDetailsURL        string
	JobSummary           string
	CompanyName          string
	Location             string
	CountryCode          string
	ListingDate          time.Time
	SalaryLabel          *string
	WorkType             *string
	JobClassification    *string
	JobSubClassification *string
	WorkArrangements     *string
}

type JobDetails struct {
	Status     string
	IsExpired  bool
	Details    string
	IsVerified *bool
	ExpiresAt  *time.Time
}

type JobWithDetails struct {
	Job
	Details *JobDetails
}

type Favorite struct {
	ID          uint
	PrincipalID uint
	JobID       string
	CreatedAt   time.Time
	Notes       *string
	Job         Job
}

// JobFilter holds exact-match filters; empty fields are ignored.
type JobFilter struct {
	Classification    string
	SubClassification string
	WorkArrangement   string
}

func toPrincipal(row models.APIKey) Principal {
	return Principal{
		ID:           row.ID,
		KeyPrefix:    row.KeyPrefix,
		Name:         row.Name,
		Email:        row.Email,
		Company:      row.Company,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		LastUsedAt:   row.LastUsedAt,
		ExpiresAt:    row.ExpiresAt,
		RateLimit:    row.RateLimit,
		RequestCount: row.RequestCount,
	}
}

func toKeyEvent(row models.APIKeyEvent) KeyEvent {
	return KeyEvent{
		ID:          row.EID.String(),
		KeyID:       row.APIKeyID,
		Type:        string(row.Type),
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}

func toJob(row models.JobListing) Job {
	return Job{
		JobID:                row.JobID,
		Title:                row.Title,
		JobDetailsURL:        row.JobDetailsURL,
		JobSummary:           row.JobSummary,
		CompanyName:          row.CompanyName,
		Location:             row.Location,
		CountryCode:          row.CountryCode,
		ListingDate:          row.ListingDate,
		SalaryLabel:          row.SalaryLabel,
		WorkType:             row.WorkType,
		JobClassification:    row.JobClassification,
		JobSubClassification: row.JobSubClassification,
		WorkArrangements:     row.WorkArrangements,
	}
}

func toJobs(rows []models.JobListing) []Job {
	jobs := make([]Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, toJob(row))
	}
	return jobs
}

func toJobWithDetails(row models.JobListing) *JobWithDetails {
	out := &JobWithDetails{Job: toJob(row)}
	if row.Details != nil {
		out.Details = &JobDetails{
			Status:     row.Details.Status,
			IsExpired:  row.Details.IsExpired,
			Details:    row.Details.Details,
			IsVerified: row.Details.IsVerified,
			ExpiresAt:  row.Details.ExpiresAt,
		}
	}
	return out
}

func toFavorite(row models.FavoriteJob) Favorite {
	return Favorite{
		ID:          row.ID,
		PrincipalID: row.APIKeyID,
		JobID:       row.JobID,
		CreatedAt:   row.CreatedAt,
		Notes:       row.Notes,
		Job:         toJob(row.Job),
	}
}

// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"jobs-api/repository"
	"time"
)

// swagger:model RootResponse
type RootResponse struct {
	Message string `json:"message" example:"Job Scrapers API"`
	Version string `json:"version" example:"1.0.0"`
}

// swagger:model HealthResponse
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Job '12345' removed from favorites"`
}

// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	Message string            `json:"message" example:"Request validation failed"`
	Errors  []ValidationError `json:"errors"`
}

// swagger:model ValidationError
type ValidationError struct {
	// Name of the offending query parameter, or "body"
	Field   string `json:"field" example:"limit"`
	Message string `json:"message" example:"failed to bind field value to int"`
}

// swagger:model JobListingResponse
type JobListingResponse struct {
	JobID                string    `json:"job_id" example:"81234567"`
	Title                string    `json:"title" example:"Senior Go Engineer"`
	JobDetailsURL        string    `json:"job_details_url" example:"https://example.com/job/81234567"`
	JobSummary           string    `json:"job_summary"`
	CompanyName          string    `json:"company_name" example:"Acme Pty Ltd"`
	Location             string    `json:"location" example:"Sydney NSW"`
	CountryCode          string    `json:"country_code" example:"AU"`
	ListingDate          time.Time `json:"listing_date" example:"2025-01-01T00:00:00Z"`
	SalaryLabel          *string   `json:"salary_label"`
	WorkType             *string   `json:"work_type" example:"Full time"`
	JobClassification    *string   `json:"job_classification" example:"Information & Communication Technology"`
	JobSubClassification *string   `json:"job_sub_classification" example:"Developers/Programmers"`
	WorkArrangements     *string   `json:"work_arrangements" example:"Hybrid"`
}

// swagger:model JobWithDetailsResponse
type JobWithDetailsResponse struct {
	JobListingResponse
	Status    *string `json:"status" example:"Active"`
	IsExpired *bool   `json:"is_expired"`
	// Job description rendered to sanitized HTML
	Details    *string    `json:"details"`
	IsVerified *bool      `json:"is_verified"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

// swagger:model FavoriteJobRequest
type FavoriteJobRequest struct {
	// Optional free-form notes, replaced on every add
	Notes *string `json:"notes" example:"Apply before Friday"`
}

// swagger:model FavoriteJobResponse
type FavoriteJobResponse struct {
	ID        uint               `json:"id" example:"1"`
	JobID     string             `json:"job_id" example:"81234567"`
	CreatedAt time.Time          `json:"created_at" example:"2025-01-01T12:00:00Z"`
	Notes     *string            `json:"notes"`
	Job       JobListingResponse `json:"job"`
}

// swagger:model FavoriteStatusResponse
type FavoriteStatusResponse struct {
	JobID       string `json:"job_id" example:"81234567"`
	IsFavorited bool   `json:"is_favorited"`
}

func newJobListingResponse(job repository.Job) JobListingResponse {
	return JobListingResponse{
		JobID:                job.JobID,
		Title:                job.Title,
		JobDetailsURL:        job.JobDetailsURL,
		JobSummary:           job.JobSummary,
		CompanyName:          job.CompanyName,
		Location:             job.Location,
		CountryCode:          job.CountryCode,
		ListingDate:          job.ListingDate,
		SalaryLabel:          job.SalaryLabel,
		WorkType:             job.WorkType,
		JobClassification:    job.JobClassification,
		JobSubClassification: job.JobSubClassification,
		WorkArrangements:     job.WorkArrangements,
	}
}

func newJobListingResponses(jobs []repository.Job) []JobListingResponse {
	out := make([]JobListingResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, newJobListingResponse(job))
	}
	return out
}

func newFavoriteJobResponse(fav repository.Favorite) FavoriteJobResponse {
	return FavoriteJobResponse{
		ID:        fav.ID,
		JobID:     fav.JobID,
		CreatedAt: fav.CreatedAt,
		Notes:     fav.Notes,
		Job:       newJobListingResponse(fav.Job),
	}
}

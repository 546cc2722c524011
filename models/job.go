// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

// JobListing rows are written by the ingestion process; this service only reads them.
type JobListing struct {
	JobID                string `gorm:"primaryKey;size:255"`
	Title                string
	JobDetailsURL        string `gorm:"column:job_details_url"`
	JobSummary           string `gorm:"type:text"`
	CompanyName          string
	Location             string
	CountryCode          string    `gorm:"size:8"`
	ListingDate          time.Time `gorm:"index"`
	SalaryLabel          *string
	WorkType             *string
	JobClassification    *string     `gorm:"index"`
	JobSubClassification *string     `gorm:"index"`
	WorkArrangements     *string     `gorm:"index"`
	Details              *JobDetails `gorm:"foreignKey:JobID;references:JobID"`
}

func (JobListing) TableName() string {
	return "job_listings"
}

type JobDetails struct {
	JobID      string `gorm:"primaryKey;size:255"`
	Status     string
	IsExpired  bool
	Details    string `gorm:"type:text"`
	IsVerified *bool
	ExpiresAt  *time.Time
}

func (JobDetails) TableName() string {
	return "job_details"
}

func init() {
	AllModels = append(AllModels, &JobListing{}, &JobDetails{})
}

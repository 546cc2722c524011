// SPDX-License-Identifier: GPL-3.0-only

// Package dbtest builds migrated throwaway databases for tests.
package dbtest

import (
	"jobs-api/crypto"
	"jobs-api/db"
	"jobs-api/models"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a migrated SQLite database living in t.TempDir().
func New(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := db.OpenDialector(sqlite.Open(db.SQLiteDSN(filepath.Join(t.TempDir(), "test.db"))))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}

// Crypto returns argon2id settings cheap enough for unit tests.
func Crypto() *crypto.Crypto {
	return &crypto.Crypto{
		ArgonTime:    1,
		ArgonMemory:  1024,
		ArgonThreads: 1,
		ArgonKeyLen:  32,
		ArgonSaltLen: 16,
	}
}

// JobOption customizes a seeded listing.
type JobOption func(*models.JobListing)

func WithClassification(classification, sub string) JobOption {
	return func(j *models.JobListing) {
		j.JobClassification = &classification
		j.JobSubClassification = &sub
	}
}

func WithWorkArrangements(arrangement string) JobOption {
	return func(j *models.JobListing) {
		j.WorkArrangements = &arrangement
	}
}

func WithListingDate(date time.Time) JobOption {
	return func(j *models.JobListing) {
		j.ListingDate = date
	}
}

// SeedJob inserts a listing with predictable text fields derived from jobID.
func SeedJob(t testing.TB, conn *gorm.DB, jobID, title string, opts ...JobOption) models.JobListing {
	t.Helper()

	job := models.JobListing{
		JobID:         jobID,
		Title:         title,
		JobDetailsURL: "https://jobs.example.com/" + jobID,
		JobSummary:    "Summary for " + title,
		CompanyName:   "Acme Pty Ltd",
		Location:      "Sydney NSW",
		CountryCode:   "AU",
		ListingDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&job)
	}
	if err := conn.Create(&job).Error; err != nil {
		t.Fatalf("seed job %s: %v", jobID, err)
	}
	return job
}

func SeedDetails(t testing.TB, conn *gorm.DB, jobID, body string) models.JobDetails {
	t.Helper()

	verified := true
	details := models.JobDetails{
		JobID:      jobID,
		Status:     "Active",
		IsExpired:  false,
		Details:    body,
		IsVerified: &verified,
	}
	if err := conn.Create(&details).Error; err != nil {
		t.Fatalf("seed details %s: %v", jobID, err)
	}
	return details
}

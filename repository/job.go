// SPDX-License-Identifier: GPL-3.0-only

package repository

import (
	"context"
	"jobs-api/commons"
	"jobs-api/models"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"
)

const MinSearchKeywordLength = 2

const (
	columnClassification    = "job_classification"
	columnSubClassification = "job_sub_classification"
	columnWorkArrangements  = "work_arrangements"
)

// JobRepository gives read-only access to the job catalog.
type JobRepository struct {
	db       *gorm.DB
	distinct *expirable.LRU[string, []string]
}

// NewJobRepository builds the catalog accessor. Distinct value lists are
// cached for cacheTTL; a non-positive TTL disables the cache.
func NewJobRepository(db *gorm.DB, cacheTTL time.Duration) *JobRepository {
	r := &JobRepository{db: db}
	if cacheTTL > 0 {
		r.distinct = expirable.NewLRU[string, []string](8, nil, cacheTTL)
	}
	return r
}

func (r *JobRepository) List(ctx context.Context, filter JobFilter, skip, limit int) ([]Job, error) {
	if err := commons.ValidatePage(skip, limit); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.JobListing{})
	if filter.Classification != "" {
		query = query.Where(columnClassification+" = ?", filter.Classification)
	}
	if filter.SubClassification != "" {
		query = query.Where(columnSubClassification+" = ?", filter.SubClassification)
	}
	if filter.WorkArrangement != "" {
		query = query.Where(columnWorkArrangements+" = ?", filter.WorkArrangement)
	}

	var rows []models.JobListing
	err := query.
		Order("listing_date DESC").
		Order("job_id ASC").
		Offset(skip).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, commons.NewStoreError("list jobs", err)
	}
	return toJobs(rows), nil
}

// Get returns the listing and its details, or nil when jobID is unknown.
func (r *JobRepository) Get(ctx context.Context, jobID string) (*JobWithDetails, error) {
	var rows []models.JobListing
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("job_id = ?", jobID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, commons.NewStoreError("get job", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toJobWithDetails(rows[0]), nil
}

func (r *JobRepository) Exists(ctx context.Context, jobID string) (bool, error) {
	exists, err := jobExists(r.db.WithContext(ctx), jobID)
	if err != nil {
		return false, commons.NewStoreError("check job exists", err)
	}
	return exists, nil
}

func jobExists(tx *gorm.DB, jobID string) (bool, error) {
	var count int64
	if err := tx.Model(&models.JobListing{}).Where("job_id = ?", jobID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *JobRepository) DistinctClassifications(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, columnClassification)
}

func (r *JobRepository) DistinctSubClassifications(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, columnSubClassification)
}

func (r *JobRepository) DistinctWorkArrangements(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, columnWorkArrangements)
}

func (r *JobRepository) distinctValues(ctx context.Context, column string) ([]string, error) {
	if r.distinct != nil {
		if values, ok := r.distinct.Get(column); ok {
			return values, nil
		}
	}

	values := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.JobListing{}).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, commons.NewStoreError("distinct "+column, err)
	}

	if r.distinct != nil {
		r.distinct.Add(column, values)
	}
	return values, nil
}

// Search matches keyword case-insensitively against title, summary, company,
// location and the details body. Listings without details still match on
// their own fields.
func (r *JobRepository) Search(ctx context.Context, keyword string, skip, limit int) ([]Job, error) {
	keyword = strings.TrimSpace(keyword)
	if len([]rune(keyword)) < MinSearchKeywordLength {
		return nil, &commons.InvalidInputError{Field: "keyword", Message: "Search keyword must be at least 2 characters long"}
	}
	if err := commons.ValidatePage(skip, limit); err != nil {
		return nil, err
	}

	term := "%" + strings.ToLower(keyword) + "%"
	var rows []models.JobListing
	err := r.db.WithContext(ctx).
		Model(&models.JobListing{}).
		Select("job_listings.*").
		Joins("LEFT JOIN job_details ON job_details.job_id = job_listings.job_id").
		Where(
			"LOWER(job_listings.title) LIKE ? OR LOWER(job_listings.job_summary) LIKE ? OR "+
				"LOWER(job_listings.company_name) LIKE ? OR LOWER(job_listings.location) LIKE ? OR "+
				"LOWER(job_details.details) LIKE ?",
			term, term, term, term, term,
		).
		Order("job_listings.listing_date DESC").
		Order("job_listings.job_id ASC").
		Offset(skip).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, commons.NewStoreError("search jobs", err)
	}
	return toJobs(rows), nil
}

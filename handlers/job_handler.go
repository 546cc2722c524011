// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"jobs-api/repository"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListJobsHandler godoc
// @Summary      List job listings
// @Description  Returns listings newest first. Filters are exact matches and may be combined.
// @Tags         jobs
// @Produce      json
// @Param        job_classification      query  string  false  "Classification filter"
// @Param        job_sub_classification  query  string  false  "Sub-classification filter"
// @Param        work_arrangements       query  string  false  "Work arrangement filter"
// @Param        skip                    query  int     false  "Rows to skip"  default(0)
// @Param        limit                   query  int     false  "Page size (1-1000)"  default(100)
// @Success      200 {array}  JobListingResponse
// @Failure      400 {object} echo.HTTPError "Bad Request"
// @Failure      422 {object} ValidationErrorResponse "Unprocessable Entity"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /jobs [get]
func (h *Handler) ListJobsHandler(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	filter := repository.JobFilter{
		Classification:    c.QueryParam("job_classification"),
		SubClassification: c.QueryParam("job_sub_classification"),
		WorkArrangement:   c.QueryParam("work_arrangements"),
	}

	jobs, err := h.jobs.List(c.Request().Context(), filter, skip, limit)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, newJobListingResponses(jobs))
}

// GetJobHandler godoc
// @Summary      Get a job listing with details
// @Description  The details body is rendered from markdown to sanitized HTML.
// @Tags         jobs
// @Produce      json
// @Param        job_id  path  string  true  "Job ID"
// @Success      200 {object} JobWithDetailsResponse
// @Failure      404 {object} echo.HTTPError "Not Found"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /jobs/{job_id} [get]
func (h *Handler) GetJobHandler(c echo.Context) error {
	jobID := c.Param("job_id")

	job, err := h.jobs.Get(c.Request().Context(), jobID)
	if err != nil {
		return toHTTPError(c, err)
	}
	if job == nil {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Job with ID '" + jobID + "' not found",
		}
	}

	res := JobWithDetailsResponse{JobListingResponse: newJobListingResponse(job.Job)}
	if d := job.Details; d != nil {
		html := h.renderer.ToHTML(d.Details)
		res.Status = &d.Status
		res.IsExpired = &d.IsExpired
		res.Details = &html
		res.IsVerified = d.IsVerified
		res.ExpiresAt = d.ExpiresAt
	}
	return c.JSON(http.StatusOK, res)
}

// SearchJobsHandler godoc
// @Summary      Search job listings
// @Description  Case-insensitive substring match over title, summary, company, location and details.
// @Tags         jobs
// @Produce      json
// @Param        keyword  query  string  true   "Search term (at least 2 characters)"
// @Param        skip     query  int     false  "Rows to skip"  default(0)
// @Param        limit    query  int     false  "Page size (1-1000)"  default(100)
// @Success      200 {array}  JobListingResponse
// @Failure      400 {object} echo.HTTPError "Bad Request"
// @Failure      422 {object} ValidationErrorResponse "Unprocessable Entity"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /jobs/search [get]
func (h *Handler) SearchJobsHandler(c echo.Context) error {
	if !c.QueryParams().Has("keyword") {
		return validationError(ValidationError{Field: "keyword", Message: "field required"})
	}
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	jobs, err := h.jobs.Search(c.Request().Context(), c.QueryParam("keyword"), skip, limit)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, newJobListingResponses(jobs))
}

// GetClassificationsHandler godoc
// @Summary      Distinct job classifications
// @Tags         jobs
// @Produce      json
// @Success      200 {array} string
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /jobs/classifications [get]
func (h *Handler) GetClassificationsHandler(c echo.Context) error {
	values, err := h.jobs.DistinctClassifications(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, values)
}

// GetSubClassificationsHandler godoc
// @Summary      Distinct job sub-classifications
// @Tags         jobs
// @Produce      json
// @Success      200 {array} string
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /jobs/sub-classifications [get]
func (h *Handler) GetSubClassificationsHandler(c echo.Context) error {
	values, err := h.jobs.DistinctSubClassifications(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, values)
}

// GetWorkArrangementsHandler godoc
// @Summary      Distinct work arrangements
// @Tags         jobs
// @Produce      json
// @Success      200 {array} string
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /jobs/work-arrangements [get]
func (h *Handler) GetWorkArrangementsHandler(c echo.Context) error {
	values, err := h.jobs.DistinctWorkArrangements(c.Request().Context())
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, values)
}

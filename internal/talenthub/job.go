package talenthub

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/jobscout/jobscout/internal/normalize"
)

const jobsPath = "/jobs"

// Job is a posting as the platform returns it. Salary may arrive as numeric
// bounds, as a free-text range, or not at all; consumers must not assume a
// numeric salary exists.
type Job struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	Site            string    `json:"job_site"`
	Type            string    `json:"job_type"`
	OpportunityType string    `json:"opportunity_type"`
	SalaryMin       *float64  `json:"salary_min"`
	SalaryMax       *float64  `json:"salary_max"`
	SalaryRange     string    `json:"salary_range"`
	MinExperience   *float64  `json:"min_experience_years"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Salary returns the normalized LPA range for the posting.
func (j *Job) Salary() normalize.SalaryRange {
	return normalize.ExtractSalary(j.SalaryMin, j.SalaryMax, j.SalaryRange)
}

// Experience returns the validated minimum experience in years, or nil when
// the posting states none.
func (j *Job) Experience() *float64 {
	return normalize.ExtractExperience(j.MinExperience)
}

type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}

	return nil
}

// Where returns the jobs satisfying keep, preserving the original order.
func (j *Jobs) Where(keep func(*Job) bool) *Jobs {
	kept := make([]*Job, 0, len(j.Items))
	for _, job := range j.Items {
		if keep(job) {
			kept = append(kept, job)
		}
	}

	return &Jobs{Items: kept}
}

type jobsResponse struct {
	Jobs []*Job `json:"jobs"`
}

// GetJobs lists postings, optionally restricted to the caller's own postings
// or to a status.
func (c *Client) GetJobs(ctx context.Context, mine bool, status string) (*Jobs, error) {
	q := url.Values{}
	if mine {
		q.Set("mine", strconv.FormatBool(mine))
	}
	if status != "" {
		q.Set("status", status)
	}

	var response jobsResponse
	if err := c.getJSON(ctx, jobsPath, q, defaultTimeout, &response); err != nil {
		return nil, err
	}

	return &Jobs{Items: response.Jobs}, nil
}

package talenthub

import (
	"context"
	"fmt"
	"time"
)

// Interview is a scheduled interview round for an application.
type Interview struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	Status        string    `json:"status"`
	Mode          string    `json:"mode"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Notes         string    `json:"notes"`
	Rating        *float64  `json:"rating"`
	Feedback      string    `json:"feedback"`
}

// InterviewRequest carries the mutable fields of an interview round.
type InterviewRequest struct {
	Mode        string    `json:"mode,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// InterviewEvaluation records the interviewer's verdict.
type InterviewEvaluation struct {
	Rating   float64 `json:"rating"`
	Feedback string  `json:"feedback"`
}

type interviewResponse struct {
	Interview *Interview `json:"interview"`
}

type interviewsResponse struct {
	Interviews []*Interview `json:"interviews"`
}

func (c *Client) ScheduleInterview(ctx context.Context, applicationID string, req *InterviewRequest) (*Interview, error) {
	path := fmt.Sprintf("%s/applications/%s/interviews", jobsPath, applicationID)

	var response interviewResponse
	if err := c.postJSON(ctx, path, req, &response); err != nil {
		return nil, err
	}

	return response.Interview, nil
}

func (c *Client) UpdateInterview(ctx context.Context, id string, req *InterviewRequest) (*Interview, error) {
	var response interviewResponse
	if err := c.postJSON(ctx, fmt.Sprintf("%s/interviews/%s", jobsPath, id), req, &response); err != nil {
		return nil, err
	}

	return response.Interview, nil
}

func (c *Client) CompleteInterview(ctx context.Context, id string) (*Interview, error) {
	var response interviewResponse
	if err := c.postJSON(ctx, fmt.Sprintf("%s/interviews/%s/complete", jobsPath, id), nil, &response); err != nil {
		return nil, err
	}

	return response.Interview, nil
}

func (c *Client) EvaluateInterview(ctx context.Context, id string, eval *InterviewEvaluation) (*Interview, error) {
	var response interviewResponse
	if err := c.postJSON(ctx, fmt.Sprintf("%s/interviews/%s/evaluate", jobsPath, id), eval, &response); err != nil {
		return nil, err
	}

	return response.Interview, nil
}

func (c *Client) ListInterviews(ctx context.Context, jobID string) ([]*Interview, error) {
	path := fmt.Sprintf("%s/%s/interviews", jobsPath, jobID)

	var response interviewsResponse
	if err := c.getJSON(ctx, path, nil, defaultTimeout, &response); err != nil {
		return nil, err
	}

	return response.Interviews, nil
}

func (c *Client) GetInterview(ctx context.Context, id string) (*Interview, error) {
	var response interviewResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/interviews/%s", jobsPath, id), nil, defaultTimeout, &response); err != nil {
		return nil, err
	}

	return response.Interview, nil
}

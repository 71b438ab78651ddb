package talenthub

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Application is a candidate's application to a posting.
type Application struct {
	ID            string    `json:"id"`
	JobID         string    `json:"job_id"`
	Status        string    `json:"status"`
	FinalScore    *float64  `json:"final_score"`
	MatchScore    *float64  `json:"match_score"`
	AIExplanation string    `json:"ai_explanation"`
	ResumeName    string    `json:"resume_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// SaveOutcome is the result of the one-shot "save without scoring" variant.
type SaveOutcome struct {
	AlreadyApplied bool         `json:"already_applied"`
	Application    *Application `json:"application"`
}

// ApplySave stores an application without waiting for scoring. The file is
// optional; passing nil saves with the resume already on record.
func (c *Client) ApplySave(ctx context.Context, jobID, filename string, file io.Reader) (*SaveOutcome, error) {
	path := fmt.Sprintf("%s/%s/apply_save", jobsPath, jobID)

	var outcome SaveOutcome
	if err := c.postMultipart(ctx, path, nil, "file", filename, file, saveTimeout, &outcome); err != nil {
		return nil, err
	}

	return &outcome, nil
}

type applicationResponse struct {
	Application *Application `json:"application"`
}

// GetMyApplication returns the caller's application to a posting, or nil when
// there is none.
func (c *Client) GetMyApplication(ctx context.Context, jobID string) (*Application, error) {
	path := fmt.Sprintf("%s/%s/my_application", jobsPath, jobID)

	var response applicationResponse
	if err := c.getJSON(ctx, path, nil, defaultTimeout, &response); err != nil {
		return nil, err
	}

	return response.Application, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (*Application, error) {
	var application Application
	if err := c.getJSON(ctx, fmt.Sprintf("%s/applications/%s", jobsPath, id), nil, defaultTimeout, &application); err != nil {
		return nil, err
	}

	return &application, nil
}

// GetSharedApplication fetches an application through its sharing link,
// which does not require the owner's session.
func (c *Client) GetSharedApplication(ctx context.Context, id string) (*Application, error) {
	var application Application
	if err := c.getJSON(ctx, fmt.Sprintf("%s/applications/%s/shared", jobsPath, id), nil, defaultTimeout, &application); err != nil {
		return nil, err
	}

	return &application, nil
}

// DownloadResume streams the stored resume binary. The caller must close the
// returned reader.
func (c *Client) DownloadResume(ctx context.Context, id string) (io.ReadCloser, error) {
	return c.download(ctx, fmt.Sprintf("%s/applications/%s/resume", jobsPath, id))
}

func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, fmt.Sprintf("%s/applications/%s", jobsPath, id))
}

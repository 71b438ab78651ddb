package talenthub

import (
	"context"
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
)

const (
	// TaskDone and TaskError are the terminal task statuses. Anything else
	// means the analysis is still in progress.
	TaskDone  = "done"
	TaskError = "error"
)

// TaskStatus is one snapshot of a server-side analysis task.
type TaskStatus struct {
	TaskID  string         `json:"task_id"`
	Status  string         `json:"status"`
	Percent int            `json:"percent"`
	Message string         `json:"message"`
	Result  map[string]any `json:"result"`
	Error   string         `json:"error"`
}

func (t *TaskStatus) Terminal() bool {
	return t.Status == TaskDone || t.Status == TaskError
}

// DecodeResult decodes the loosely-typed task result into target using its
// json tags.
func (t *TaskStatus) DecodeResult(target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(t.Result)
}

type applyAsyncResponse struct {
	TaskID string `json:"task_id"`
}

type taskResponse struct {
	Task *TaskStatus `json:"task"`
}

// ApplyAsync submits a resume for scored application and returns the task id
// to poll. The first analysis of an artifact may be heavy on the server, so
// this call runs under the long upload budget.
func (c *Client) ApplyAsync(ctx context.Context, jobID, filename string, file io.Reader) (string, error) {
	path := fmt.Sprintf("%s/%s/apply_async", jobsPath, jobID)

	var response applyAsyncResponse
	if err := c.postMultipart(ctx, path, nil, "file", filename, file, uploadTimeout, &response); err != nil {
		return "", err
	}

	if response.TaskID == "" {
		return "", fmt.Errorf("server did not return a task id")
	}

	return response.TaskID, nil
}

// ApplyStatus fetches the current snapshot of an analysis task.
func (c *Client) ApplyStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	path := fmt.Sprintf("%s/apply_status/%s", jobsPath, taskID)

	var response taskResponse
	if err := c.getJSON(ctx, path, nil, pollTimeout, &response); err != nil {
		return nil, err
	}

	if response.Task == nil {
		return nil, fmt.Errorf("task %s not found in response", taskID)
	}

	return response.Task, nil
}

// Package tracker drives a server-side resume-analysis task to completion:
// submit the upload, poll the status endpoint on a fixed interval, and stop
// on the first terminal snapshot. Cancellation and superseding starts bump a
// generation counter, so responses from an abandoned run are discarded
// instead of applied out of order.
package tracker

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/talenthub"
	"github.com/jobscout/jobscout/internal/utils"
)

const defaultInterval = 800 * time.Millisecond

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusPolling    Status = "polling"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// State is a snapshot of the tracker for rendering. Done and Error are
// terminal; an error transition always clears any previous result.
type State struct {
	Status  Status
	Percent int
	Message string
	Result  map[string]any
	Err     string
}

// Client is the slice of the platform API the tracker needs.
type Client interface {
	ApplyAsync(ctx context.Context, jobID, filename string, file io.Reader) (string, error)
	ApplyStatus(ctx context.Context, taskID string) (*talenthub.TaskStatus, error)
	ApplySave(ctx context.Context, jobID, filename string, file io.Reader) (*talenthub.SaveOutcome, error)
}

type Tracker struct {
	id       string
	client   Client
	logger   *zap.Logger
	interval time.Duration

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
}

type Option func(*Tracker)

// WithInterval overrides the polling interval. Tests use this to poll fast.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

func New(client Client, logger *zap.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Tracker{
		id:       uuid.NewString(),
		client:   client,
		logger:   logger,
		interval: defaultInterval,
		state:    State{Status: StatusIdle},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// State returns the current snapshot.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Done reports completion of the most recently started run. Nil before the
// first Start.
func (t *Tracker) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.done
}

// Start submits the file and begins polling in the background. A Start while
// a run is in flight supersedes it: the old run's responses are dropped even
// if its network requests still complete.
func (t *Tracker) Start(ctx context.Context, jobID, filename string, file io.Reader) {
	t.mu.Lock()
	gen := t.begin()
	ctx, t.cancel = context.WithCancel(ctx)
	t.state = State{Status: StatusSubmitting, Message: "Uploading resume..."}
	done := make(chan struct{})
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)
		t.run(ctx, gen, jobID, filename, file)
	}()
}

// Cancel stops polling and resets an in-flight run to idle. Responses
// arriving afterwards are no-ops. Terminal states are left untouched.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	t.generation++
	stop := t.cancel
	t.cancel = nil
	if t.state.Status == StatusSubmitting || t.state.Status == StatusPolling {
		t.state = State{Status: StatusIdle}
	}
	t.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// SaveOnly is the one-shot variant: a single request, no polling, terminal
// success or failure only.
func (t *Tracker) SaveOnly(ctx context.Context, jobID, filename string, file io.Reader) (*talenthub.SaveOutcome, error) {
	t.mu.Lock()
	gen := t.begin()
	t.state = State{Status: StatusSubmitting, Message: "Saving application..."}
	t.mu.Unlock()

	outcome, err := t.client.ApplySave(ctx, jobID, filename, file)
	if err != nil {
		t.fail(gen, err.Error())
		return nil, err
	}

	t.transition(gen, State{Status: StatusDone, Percent: 100, Message: "Saved"})

	return outcome, nil
}

// begin invalidates any in-flight run and returns the new generation.
// Callers must hold t.mu.
func (t *Tracker) begin() uint64 {
	t.generation++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}

	return t.generation
}

func (t *Tracker) run(ctx context.Context, gen uint64, jobID, filename string, file io.Reader) {
	taskID, err := t.client.ApplyAsync(ctx, jobID, filename, file)
	if err != nil {
		// Submit failure goes straight to error, no polling attempted.
		t.fail(gen, err.Error())
		return
	}

	t.logger.Debug("analysis task submitted",
		zap.String("tracker_id", t.id),
		zap.String("job_id", jobID),
		zap.String("task_id", taskID),
	)

	if !t.transition(gen, State{Status: StatusPolling, Message: "Queued..."}) {
		return
	}

	for {
		if err := utils.WaitFor(ctx, t.interval); err != nil {
			return
		}

		task, err := t.client.ApplyStatus(ctx, taskID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			t.fail(gen, err.Error())
			return
		}

		if !t.apply(gen, task) {
			return
		}

		if task.Terminal() {
			return
		}
	}
}

// apply folds one poll response into the state. Returns false when the
// response is stale (the run was canceled or superseded) and must be dropped.
func (t *Tracker) apply(gen uint64, task *talenthub.TaskStatus) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		return false
	}

	switch task.Status {
	case talenthub.TaskDone:
		t.state = State{
			Status:  StatusDone,
			Percent: 100,
			Message: task.Message,
			Result:  task.Result,
		}
	case talenthub.TaskError:
		// The task's own error field is surfaced verbatim.
		msg := task.Error
		if msg == "" {
			msg = task.Message
		}
		t.state = State{
			Status:  StatusError,
			Percent: clampPercent(task.Percent),
			Message: task.Message,
			Err:     msg,
		}
	default:
		t.state.Status = StatusPolling
		t.state.Percent = clampPercent(task.Percent)
		t.state.Message = task.Message
	}

	return true
}

func (t *Tracker) transition(gen uint64, next State) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		return false
	}
	t.state = next

	return true
}

func (t *Tracker) fail(gen uint64, message string) {
	t.transition(gen, State{Status: StatusError, Message: message, Err: message})
}

// clampPercent tolerates out-of-range progress values. Percent is expected
// to be monotonic but the server does not guarantee it.
func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}

	return p
}

package tracker

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/talenthub"
)

type fakeClient struct {
	mu           sync.Mutex
	submitErr    error
	statuses     []*talenthub.TaskStatus
	pollErr      error
	saveOutcome  *talenthub.SaveOutcome
	saveErr      error
	submitCalls  int
	pollCalls    int
	release      chan struct{}
	blockFirst   chan struct{}
	firstEntered bool
	pollEntered  int
}

func (f *fakeClient) ApplyAsync(_ context.Context, _, _ string, _ io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitCalls++
	if f.submitErr != nil {
		return "", f.submitErr
	}

	return "t-1", nil
}

func (f *fakeClient) ApplyStatus(_ context.Context, _ string) (*talenthub.TaskStatus, error) {
	f.mu.Lock()
	f.pollEntered++
	first := !f.firstEntered
	f.firstEntered = true
	f.mu.Unlock()

	if first && f.blockFirst != nil {
		<-f.blockFirst
	}

	if f.release != nil {
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.pollCalls++
	if f.pollErr != nil {
		return nil, f.pollErr
	}

	status := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}

	return status, nil
}

func (f *fakeClient) ApplySave(_ context.Context, _, _ string, _ io.Reader) (*talenthub.SaveOutcome, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}

	return f.saveOutcome, nil
}

func (f *fakeClient) polls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.pollCalls
}

func waitDone(t *testing.T, tr *Tracker) {
	t.Helper()

	select {
	case <-tr.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("tracker did not finish in time")
	}
}

func TestTrackerHappyPath(t *testing.T) {
	t.Parallel()

	client := &fakeClient{statuses: []*talenthub.TaskStatus{
		{Status: "running", Percent: 20, Message: "Parsing resume..."},
		{Status: "running", Percent: 70, Message: "Scoring..."},
		{Status: talenthub.TaskDone, Percent: 100, Message: "Done", Result: map[string]any{"final_score": 83.0}},
	}}

	tr := New(client, zap.NewNop(), WithInterval(time.Millisecond))
	tr.Start(context.Background(), "j1", "resume.pdf", strings.NewReader("pdf"))
	waitDone(t, tr)

	state := tr.State()
	if state.Status != StatusDone {
		t.Fatalf("expected done, got %+v", state)
	}
	if state.Percent != 100 {
		t.Fatalf("expected percent 100, got %d", state.Percent)
	}
	if state.Result["final_score"] != 83.0 {
		t.Fatalf("expected stored result, got %+v", state.Result)
	}

	// A terminal response stops the interval: no further polls may happen.
	polled := client.polls()
	time.Sleep(20 * time.Millisecond)
	if client.polls() != polled {
		t.Fatalf("polling continued after terminal status")
	}
}

func TestTrackerSubmitFailureSkipsPolling(t *testing.T) {
	t.Parallel()

	client := &fakeClient{submitErr: errors.New("File is too large. Maximum size is 5MB.")}

	tr := New(client, zap.NewNop(), WithInterval(time.Millisecond))
	tr.Start(context.Background(), "j1", "resume.pdf", strings.NewReader("pdf"))
	waitDone(t, tr)

	state := tr.State()
	if state.Status != StatusError {
		t.Fatalf("expected error state, got %+v", state)
	}
	if state.Err != "File is too large. Maximum size is 5MB." {
		t.Fatalf("unexpected error message: %q", state.Err)
	}
	if client.polls() != 0 {
		t.Fatalf("expected no polls after submit failure, got %d", client.polls())
	}
}

func TestTrackerTaskErrorSurfacedVerbatim(t *testing.T) {
	t.Parallel()

	client := &fakeClient{statuses: []*talenthub.TaskStatus{
		{Status: "running", Percent: 40, Message: "Embedding..."},
		{Status: talenthub.TaskError, Percent: 40, Message: "AI analysis failed", Error: "AI analysis failed"},
	}}

	tr := New(client, zap.NewNop(), WithInterval(time.Millisecond))
	tr.Start(context.Background(), "j1", "resume.pdf", strings.NewReader("pdf"))
	waitDone(t, tr)

	state := tr.State()
	if state.Status != StatusError {
		t.Fatalf("expected error state, got %+v", state)
	}
	if state.Err != "AI analysis failed" {
		t.Fatalf("expected verbatim task error, got %q", state.Err)
	}
	if state.Result != nil {
		t.Fatalf("error state must not carry a result")
	}
}

func TestTrackerCancelDropsLateResponse(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := &fakeClient{
		release: release,
		statuses: []*talenthub.TaskStatus{
			{Status: talenthub.TaskDone, Percent: 100, Message: "Done", Result: map[string]any{"final_score": 90.0}},
		},
	}

	tr := New(client, zap.NewNop(), WithInterval(time.Millisecond))
	tr.Start(context.Background(), "j1", "resume.pdf", strings.NewReader("pdf"))

	// Wait for the run to be in flight, then cancel while the poll response
	// is still pending.
	deadline := time.Now().Add(time.Second)
	for tr.State().Status != StatusPolling {
		if time.Now().After(deadline) {
			t.Fatalf("tracker never reached polling state")
		}
		time.Sleep(time.Millisecond)
	}

	tr.Cancel()
	close(release)
	waitDone(t, tr)

	state := tr.State()
	if state.Status != StatusIdle {
		t.Fatalf("expected idle after cancel, got %+v", state)
	}
	if state.Result != nil {
		t.Fatalf("stale response after cancel must not mutate state")
	}
}

func TestTrackerStartSupersedesPreviousRun(t *testing.T) {
	t.Parallel()

	blockFirst := make(chan struct{})
	// The first poll (old run) stalls until after the new run has finished;
	// its eventual response carries the old score and must be dropped.
	client := &fakeClient{
		blockFirst: blockFirst,
		statuses: []*talenthub.TaskStatus{
			{Status: talenthub.TaskDone, Percent: 100, Message: "Done", Result: map[string]any{"final_score": 55.0}},
			{Status: talenthub.TaskDone, Percent: 100, Message: "Done", Result: map[string]any{"final_score": 10.0}},
		},
	}

	tr := New(client, zap.NewNop(), WithInterval(time.Millisecond))
	tr.Start(context.Background(), "j1", "old.pdf", strings.NewReader("pdf"))
	firstDone := tr.Done()

	deadline := time.Now().Add(time.Second)
	for {
		client.mu.Lock()
		entered := client.pollEntered
		client.mu.Unlock()
		if entered >= 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("old run never issued its poll")
		}
		time.Sleep(time.Millisecond)
	}

	tr.Start(context.Background(), "j1", "new.pdf", strings.NewReader("pdf"))
	waitDone(t, tr)

	close(blockFirst)
	select {
	case <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatalf("superseded run did not finish")
	}

	state := tr.State()
	if state.Status != StatusDone {
		t.Fatalf("expected done, got %+v", state)
	}
	if state.Result["final_score"] != 55.0 {
		t.Fatalf("old run's result leaked into the new run: %+v", state.Result)
	}
}

func TestTrackerPollPercentClamped(t *testing.T) {
	t.Parallel()

	client := &fakeClient{statuses: []*talenthub.TaskStatus{
		{Status: "running", Percent: 150, Message: "odd"},
		{Status: talenthub.TaskDone, Percent: 100, Message: "Done"},
	}}

	tr := New(client, zap.NewNop(), WithInterval(time.Millisecond))
	tr.Start(context.Background(), "j1", "resume.pdf", strings.NewReader("pdf"))
	waitDone(t, tr)

	if tr.State().Status != StatusDone {
		t.Fatalf("expected done, got %+v", tr.State())
	}
}

func TestSaveOnly(t *testing.T) {
	t.Parallel()

	client := &fakeClient{saveOutcome: &talenthub.SaveOutcome{AlreadyApplied: true}}
	tr := New(client, zap.NewNop())

	outcome, err := tr.SaveOnly(context.Background(), "j1", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.AlreadyApplied {
		t.Fatalf("expected already_applied outcome")
	}
	if tr.State().Status != StatusDone {
		t.Fatalf("expected done state, got %+v", tr.State())
	}

	failing := New(&fakeClient{saveErr: errors.New("boom")}, zap.NewNop())
	if _, err := failing.SaveOnly(context.Background(), "j1", "", nil); err == nil {
		t.Fatalf("expected save failure to propagate")
	}
	if failing.State().Status != StatusError {
		t.Fatalf("expected error state, got %+v", failing.State())
	}
}

package ranking

import (
	"testing"
	"time"

	"github.com/jobscout/jobscout/internal/talenthub"
)

func fp(v float64) *float64 { return &v }

func jobIDs(jobs *talenthub.Jobs) []string {
	out := make([]string, 0, jobs.Len())
	for _, job := range jobs.Items {
		out = append(out, job.ID)
	}

	return out
}

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSortJobsRelevanceIsIdentity(t *testing.T) {
	t.Parallel()

	jobs := &talenthub.Jobs{Items: []*talenthub.Job{{ID: "b"}, {ID: "a"}, {ID: "c"}}}
	if err := SortJobs(jobs, Relevance); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrder(t, jobIDs(jobs), []string{"b", "a", "c"})
}

func TestSortJobsByDate(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	jobs := &talenthub.Jobs{Items: []*talenthub.Job{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "mid", CreatedAt: base.Add(24 * time.Hour)},
	}}

	if err := SortJobs(jobs, DatePosted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrder(t, jobIDs(jobs), []string{"new", "mid", "old"})
}

func TestSortJobsBySalary(t *testing.T) {
	t.Parallel()

	jobs := &talenthub.Jobs{Items: []*talenthub.Job{
		{ID: "mid", SalaryMin: fp(8), SalaryMax: fp(12)},
		{ID: "none"},
		{ID: "high", SalaryRange: "Rs 25-30"},
		{ID: "open-min", SalaryMin: fp(15)},
	}}

	if err := SortJobs(jobs, SalaryHighToLow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// high-to-low compares max ?? min ?? 0.
	assertOrder(t, jobIDs(jobs), []string{"high", "open-min", "mid", "none"})

	if err := SortJobs(jobs, SalaryLowToHigh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// low-to-high compares min ?? max ?? 0.
	assertOrder(t, jobIDs(jobs), []string{"none", "mid", "open-min", "high"})
}

func TestSortJobsStability(t *testing.T) {
	t.Parallel()

	jobs := &talenthub.Jobs{Items: []*talenthub.Job{
		{ID: "first", SalaryMin: fp(5), SalaryMax: fp(10)},
		{ID: "second", SalaryMin: fp(5), SalaryMax: fp(10)},
		{ID: "third", SalaryMin: fp(5), SalaryMax: fp(10)},
	}}

	if err := SortJobs(jobs, SalaryHighToLow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrder(t, jobIDs(jobs), []string{"first", "second", "third"})
}

func TestSortJobsUnknownKey(t *testing.T) {
	t.Parallel()

	if err := SortJobs(&talenthub.Jobs{}, "bogus"); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
}

func candidate(appID, name string, final *float64, legacy *float64) *talenthub.Candidate {
	c := &talenthub.Candidate{ApplicationID: appID, FinalScore: final, MatchScore: legacy}
	c.Profile.Name = name

	return c
}

func TestSortCandidatesByScore(t *testing.T) {
	t.Parallel()

	candidates := &talenthub.Candidates{Items: []*talenthub.Candidate{
		candidate("a1", "Asha", fp(72), nil),
		candidate("a2", "Dev", nil, fp(0.9)),
		candidate("a3", "Mira", fp(45), nil),
	}}

	if err := SortCandidates(candidates, ScoreDesc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates.Items[0].ApplicationID != "a2" || candidates.Items[2].ApplicationID != "a3" {
		t.Fatalf("unexpected descending order: %+v", candidates.Items)
	}

	if err := SortCandidates(candidates, ScoreAsc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates.Items[0].ApplicationID != "a3" || candidates.Items[2].ApplicationID != "a2" {
		t.Fatalf("unexpected ascending order: %+v", candidates.Items)
	}
}

func TestSortCandidatesByName(t *testing.T) {
	t.Parallel()

	candidates := &talenthub.Candidates{Items: []*talenthub.Candidate{
		candidate("a1", "mira", nil, nil),
		candidate("a2", "Asha", nil, nil),
		candidate("a3", "dev", nil, nil),
	}}

	if err := SortCandidates(candidates, Name); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if candidates.Items[0].Name() != "Asha" || candidates.Items[1].Name() != "dev" || candidates.Items[2].Name() != "mira" {
		t.Fatalf("expected case-insensitive name order, got %+v", candidates.Items)
	}
}

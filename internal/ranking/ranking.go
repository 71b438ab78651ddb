// Package ranking orders filtered job and candidate lists by a selectable
// key. All sorts are stable: ties keep the original (relevance) order.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jobscout/jobscout/internal/talenthub"
)

type Key string

const (
	// Relevance keeps the server-provided order.
	Relevance       Key = "relevance"
	DatePosted      Key = "date"
	SalaryHighToLow Key = "salary-high"
	SalaryLowToHigh Key = "salary-low"
	Name            Key = "name"
	ScoreDesc       Key = "score"
	ScoreAsc        Key = "score-asc"
)

// JobKeys are the orderings selectable for job lists.
var JobKeys = []Key{Relevance, DatePosted, SalaryHighToLow, SalaryLowToHigh}

// CandidateKeys are the orderings selectable for ranked candidate lists.
var CandidateKeys = []Key{Relevance, Name, ScoreDesc, ScoreAsc}

// SortJobs orders jobs in place by the given key.
func SortJobs(jobs *talenthub.Jobs, key Key) error {
	switch key {
	case Relevance, "":
		return nil
	case DatePosted:
		sort.SliceStable(jobs.Items, func(i, j int) bool {
			return jobs.Items[i].CreatedAt.After(jobs.Items[j].CreatedAt)
		})
	case SalaryHighToLow:
		sort.SliceStable(jobs.Items, func(i, j int) bool {
			return jobs.Items[i].Salary().HighKey() > jobs.Items[j].Salary().HighKey()
		})
	case SalaryLowToHigh:
		sort.SliceStable(jobs.Items, func(i, j int) bool {
			return jobs.Items[i].Salary().LowKey() < jobs.Items[j].Salary().LowKey()
		})
	default:
		return fmt.Errorf("unknown job sort key: %q", key)
	}

	return nil
}

// SortCandidates orders a ranked candidate list in place by the given key.
func SortCandidates(candidates *talenthub.Candidates, key Key) error {
	switch key {
	case Relevance, "":
		return nil
	case Name:
		sort.SliceStable(candidates.Items, func(i, j int) bool {
			return strings.ToLower(candidates.Items[i].Name()) < strings.ToLower(candidates.Items[j].Name())
		})
	case ScoreDesc:
		sort.SliceStable(candidates.Items, func(i, j int) bool {
			return candidates.Items[i].Score() > candidates.Items[j].Score()
		})
	case ScoreAsc:
		sort.SliceStable(candidates.Items, func(i, j int) bool {
			return candidates.Items[i].Score() < candidates.Items[j].Score()
		})
	default:
		return fmt.Errorf("unknown candidate sort key: %q", key)
	}

	return nil
}

package filtering

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/talenthub"
)

// Filter represents a single filtering step applied to jobs. Inactive steps
// (the user left the dimension at its default) pass everything through.
type Filter interface {
	Name() string
	Active() bool
	Apply(jobs *talenthub.Jobs) (*talenthub.Jobs, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Criteria is the user's composed filter selection. Zero values mean "Any"
// on every dimension.
type Criteria struct {
	Location         string   `mapstructure:"location"`
	Onsite           bool     `mapstructure:"onsite"`
	Remote           bool     `mapstructure:"remote"`
	SalaryBucket     string   `mapstructure:"salary"`
	ExperienceBucket string   `mapstructure:"experience"`
	JobTypes         []string `mapstructure:"types"`
}

// Build turns the criteria into the ordered filter pipeline. Unknown bucket
// or job-type names are rejected here, before any job is touched.
func Build(c Criteria) ([]Filter, error) {
	salary, err := newSalaryFilter(c.SalaryBucket)
	if err != nil {
		return nil, err
	}

	experience, err := newExperienceFilter(c.ExperienceBucket)
	if err != nil {
		return nil, err
	}

	jobType, err := newJobTypeFilter(c.JobTypes)
	if err != nil {
		return nil, err
	}

	return []Filter{
		newLocationFilter(c.Location),
		newSiteFilter(c.Onsite, c.Remote),
		salary,
		experience,
		jobType,
	}, nil
}

// Run executes the supplied filters sequentially. Predicates compose by AND:
// a job must survive every active step to remain in the result.
func Run(steps []Filter, jobs *talenthub.Jobs, logger *zap.Logger) *talenthub.Jobs {
	for _, step := range steps {
		if !step.Active() {
			if logger != nil {
				logger.Debug("filter inactive", zap.String("name", step.Name()))
			}
			continue
		}

		next, info := step.Apply(jobs)
		if logger != nil {
			logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		jobs = next
	}

	return jobs
}

func apply(jobs *talenthub.Jobs, keep func(*talenthub.Job) bool) (*talenthub.Jobs, Step) {
	initial := jobs.Len()
	kept := jobs.Where(keep)

	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}
}

func unknownName(kind, name string) error {
	return fmt.Errorf("unknown %s filter option: %q", kind, name)
}

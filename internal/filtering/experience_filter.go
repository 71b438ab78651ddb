package filtering

import (
	"github.com/jobscout/jobscout/internal/talenthub"
)

type experienceFilter struct {
	bucket *Bucket
}

func newExperienceFilter(name string) (Filter, error) {
	if name == "" || name == AnyOption {
		return &experienceFilter{}, nil
	}

	bucket := findBucket(ExperienceBuckets, name)
	if bucket == nil {
		return nil, unknownName("experience", name)
	}

	return &experienceFilter{bucket: bucket}, nil
}

func (f *experienceFilter) Name() string { return "experience" }

func (f *experienceFilter) Active() bool { return f.bucket != nil }

// Apply keeps jobs requiring at most the bucket's upper bound. A job with no
// stated minimum is assumed entry-level and kept. The asymmetry with the
// salary filter's missing-data handling is intentional product behavior.
func (f *experienceFilter) Apply(jobs *talenthub.Jobs) (*talenthub.Jobs, Step) {
	return apply(jobs, func(job *talenthub.Job) bool {
		required := job.Experience()
		if required == nil {
			return true
		}

		return *required <= f.bucket.Max
	})
}

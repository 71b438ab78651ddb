package filtering

import (
	"github.com/jobscout/jobscout/internal/talenthub"
)

type salaryFilter struct {
	bucket *Bucket
}

func newSalaryFilter(name string) (Filter, error) {
	if name == "" || name == AnyOption {
		return &salaryFilter{}, nil
	}

	bucket := findBucket(SalaryBuckets, name)
	if bucket == nil {
		return nil, unknownName("salary", name)
	}

	return &salaryFilter{bucket: bucket}, nil
}

func (f *salaryFilter) Name() string { return "salary" }

func (f *salaryFilter) Active() bool { return f.bucket != nil }

// Apply keeps jobs whose normalized range overlaps the bucket. A job with no
// extractable salary data is excluded: unknown salary never satisfies an
// explicit salary filter. This is the inverse of the experience default.
func (f *salaryFilter) Apply(jobs *talenthub.Jobs) (*talenthub.Jobs, Step) {
	return apply(jobs, func(job *talenthub.Job) bool {
		salary := job.Salary()
		if salary.Empty() {
			return false
		}

		return salary.Overlaps(f.bucket.Min, f.bucket.Max)
	})
}

package filtering

import (
	"strings"

	"github.com/jobscout/jobscout/internal/talenthub"
)

// JobTypeOptions are the selectable employment categories, each with the
// keyword looked for in the posting's free-text type descriptor.
var jobTypeKeywords = map[string]string{
	"full-time":  "full",
	"part-time":  "part",
	"contract":   "contract",
	"internship": "intern",
}

type jobTypeFilter struct {
	keywords []string
	intern   bool
}

func newJobTypeFilter(types []string) (Filter, error) {
	f := &jobTypeFilter{}
	for _, name := range types {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		keyword, ok := jobTypeKeywords[name]
		if !ok {
			return nil, unknownName("job type", name)
		}

		f.keywords = append(f.keywords, keyword)
		if name == "internship" {
			f.intern = true
		}
	}

	return f, nil
}

func (f *jobTypeFilter) Name() string { return "job_type" }

func (f *jobTypeFilter) Active() bool { return len(f.keywords) > 0 }

// Apply keeps jobs whose type descriptor contains any selected keyword.
// Internships are frequently tagged through the opportunity type instead of
// the job type, so that field gets checked too.
func (f *jobTypeFilter) Apply(jobs *talenthub.Jobs) (*talenthub.Jobs, Step) {
	return apply(jobs, func(job *talenthub.Job) bool {
		descriptor := strings.ToLower(job.Type)
		for _, keyword := range f.keywords {
			if strings.Contains(descriptor, keyword) {
				return true
			}
		}

		if f.intern && strings.Contains(strings.ToLower(job.OpportunityType), "intern") {
			return true
		}

		return false
	})
}

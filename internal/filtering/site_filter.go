package filtering

import (
	"strings"

	"github.com/jobscout/jobscout/internal/talenthub"
)

var onsiteMarkers = []string{"onsite", "on-site", "in-office", "office"}

type siteFilter struct {
	onsite bool
	remote bool
}

func newSiteFilter(onsite, remote bool) Filter {
	return &siteFilter{onsite: onsite, remote: remote}
}

func (f *siteFilter) Name() string { return "site" }

func (f *siteFilter) Active() bool { return f.onsite || f.remote }

// Apply keeps jobs matching at least one checked category. Remote postings
// often carry the marker in the location text instead of the site
// descriptor, so both are checked for "remote".
func (f *siteFilter) Apply(jobs *talenthub.Jobs) (*talenthub.Jobs, Step) {
	return apply(jobs, func(job *talenthub.Job) bool {
		if f.remote && matchesRemote(job) {
			return true
		}

		return f.onsite && matchesOnsite(job)
	})
}

func matchesRemote(job *talenthub.Job) bool {
	return strings.Contains(strings.ToLower(job.Site), "remote") ||
		strings.Contains(strings.ToLower(job.Location), "remote")
}

func matchesOnsite(job *talenthub.Job) bool {
	site := strings.ToLower(job.Site)
	for _, marker := range onsiteMarkers {
		if strings.Contains(site, marker) {
			return true
		}
	}

	return false
}

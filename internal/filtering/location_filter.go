package filtering

import (
	"strings"

	"github.com/jobscout/jobscout/internal/talenthub"
)

// allLocations is the selector's explicit no-op value, kept alongside the
// empty string.
const allLocations = "All Locations"

type locationFilter struct {
	location string
}

func newLocationFilter(location string) Filter {
	location = strings.TrimSpace(location)
	if strings.EqualFold(location, allLocations) {
		location = ""
	}

	return &locationFilter{location: location}
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Active() bool { return f.location != "" }

func (f *locationFilter) Apply(jobs *talenthub.Jobs) (*talenthub.Jobs, Step) {
	needle := strings.ToLower(f.location)

	return apply(jobs, func(job *talenthub.Job) bool {
		return strings.Contains(strings.ToLower(job.Location), needle)
	})
}

package filtering

import "math"

// AnyOption is the no-op value for single-select filter dimensions.
const AnyOption = "Any"

// Bucket is a named, fixed numeric range used as a discrete filter option.
// Max is +Inf for the open-ended top bucket. The boundaries are product
// configuration, not logic; change them here, not in the predicates.
type Bucket struct {
	Name string
	Min  float64
	Max  float64
}

// SalaryBuckets are the selectable LPA bands.
var SalaryBuckets = []Bucket{
	{Name: "0-5 LPA", Min: 0, Max: 5},
	{Name: "5-10 LPA", Min: 5, Max: 10},
	{Name: "10-15 LPA", Min: 10, Max: 15},
	{Name: "15-25 LPA", Min: 15, Max: 25},
	{Name: "25+ LPA", Min: 25, Max: math.Inf(1)},
}

// ExperienceBuckets are the selectable experience bands in years. Only the
// upper bound participates in matching: a candidate in a band sees all jobs
// requiring at most that much experience.
var ExperienceBuckets = []Bucket{
	{Name: "0-1 years", Min: 0, Max: 1},
	{Name: "2-3 years", Min: 2, Max: 3},
	{Name: "4-6 years", Min: 4, Max: 6},
	{Name: "7-10 years", Min: 7, Max: 10},
	{Name: "10+ years", Min: 10, Max: math.Inf(1)},
}

func findBucket(buckets []Bucket, name string) *Bucket {
	for i := range buckets {
		if buckets[i].Name == name {
			return &buckets[i]
		}
	}

	return nil
}

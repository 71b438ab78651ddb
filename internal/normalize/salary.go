package normalize

import (
	"math"
	"regexp"
	"strconv"
)

// Salary figures at or above this value are raw currency amounts and get
// converted to LPA. Anything below is assumed to be LPA-scale already.
const lpaThreshold = 100000

// SalaryRange is a salary interval in LPA. A nil bound is open on that side.
// Both bounds nil means the source carried no usable salary signal.
type SalaryRange struct {
	Min *float64
	Max *float64
}

// salaryStrategy tries to derive a range from the raw fields. A false return
// means the strategy does not apply and the next one should be tried.
type salaryStrategy func(min, max *float64, text string) (SalaryRange, bool)

var salaryStrategies = []salaryStrategy{
	fromNumericFields,
	fromRangeText,
}

// ExtractSalary normalizes raw salary fields into a single LPA range. The
// strategies are tried in priority order and the first applicable one wins.
func ExtractSalary(min, max *float64, text string) SalaryRange {
	for _, strategy := range salaryStrategies {
		if r, ok := strategy(min, max, text); ok {
			return r
		}
	}

	return SalaryRange{}
}

func fromNumericFields(min, max *float64, _ string) (SalaryRange, bool) {
	lo := toLPA(min)
	hi := toLPA(max)
	if lo == nil && hi == nil {
		return SalaryRange{}, false
	}

	return SalaryRange{Min: lo, Max: hi}, true
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

func fromRangeText(_, _ *float64, text string) (SalaryRange, bool) {
	nums := make([]float64, 0, 2)
	for _, match := range numberPattern.FindAllString(text, -1) {
		n, err := strconv.ParseFloat(match, 64)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 0:
		return SalaryRange{}, false
	case 1:
		// A single figure is an open-ended minimum.
		return SalaryRange{Min: &nums[0]}, true
	default:
		lo, hi := nums[0], nums[0]
		for _, n := range nums[1:] {
			lo = math.Min(lo, n)
			hi = math.Max(hi, n)
		}
		return SalaryRange{Min: &lo, Max: &hi}, true
	}
}

// toLPA validates a single raw bound and converts it to LPA. Non-finite,
// zero and negative values are rejected.
func toLPA(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return nil
	}

	val := *v
	if val >= lpaThreshold {
		val /= lpaThreshold
	}

	return &val
}

// Empty reports whether the range carries no salary signal at all.
func (r SalaryRange) Empty() bool {
	return r.Min == nil && r.Max == nil
}

// Bounds returns the closed interval used for overlap checks. An absent
// lower bound becomes 0 and an absent upper bound becomes +Inf.
func (r SalaryRange) Bounds() (lo, hi float64) {
	lo, hi = 0, math.Inf(1)
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}

	return lo, hi
}

// Overlaps reports whether the range intersects the [lo, hi] interval.
func (r SalaryRange) Overlaps(lo, hi float64) bool {
	jobLo, jobHi := r.Bounds()

	return jobHi >= lo && jobLo <= hi
}

// HighKey is the sort key for salary high-to-low ordering: max, falling back
// to min, falling back to 0.
func (r SalaryRange) HighKey() float64 {
	switch {
	case r.Max != nil:
		return *r.Max
	case r.Min != nil:
		return *r.Min
	default:
		return 0
	}
}

// LowKey is the sort key for salary low-to-high ordering: min, falling back
// to max, falling back to 0.
func (r SalaryRange) LowKey() float64 {
	switch {
	case r.Min != nil:
		return *r.Min
	case r.Max != nil:
		return *r.Max
	default:
		return 0
	}
}

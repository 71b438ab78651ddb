package normalize

import "math"

// ExtractExperience validates a raw minimum-experience value. Only finite,
// non-negative numbers are accepted; everything else maps to nil, which
// downstream consumers treat as "open to all candidates".
func ExtractExperience(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return nil
	}

	val := *v

	return &val
}

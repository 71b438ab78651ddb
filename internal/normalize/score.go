package normalize

import "math"

// ResolveScore picks the match score from the possible upstream fields, in a
// fixed precedence order: the explicit final score (0-100), then the
// AI-derived overall match (0-100), then the legacy fractional match score
// (0-1, scaled to 100). Unset or non-finite fields are skipped. The result is
// clamped to [0,100] and rounded to the nearest integer.
func ResolveScore(final, aiOverall, legacy *float64) int {
	switch {
	case populated(final):
		return ClampScore(*final)
	case populated(aiOverall):
		return ClampScore(*aiOverall)
	case populated(legacy):
		return ClampScore(*legacy * 100)
	default:
		return 0
	}
}

func populated(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// ClampScore forces an arbitrary numeric score into a 0-100 integer.
// Idempotent: clamping an already clamped value is a no-op.
func ClampScore(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 100 {
		return 100
	}

	return int(math.Round(v))
}

// RingMetrics holds the geometry for a dash-offset circular progress
// indicator. The arc fill is proportional to the score when rendered
// starting at the 12-o'clock position.
type RingMetrics struct {
	Score         int
	Radius        float64
	Circumference float64
	DashArray     float64
	DashOffset    float64
}

// Ring derives the ring geometry for the given score and radius.
// A score of 0 leaves the full circumference as offset (nothing drawn);
// a score of 100 reduces the offset to 0 (full circle drawn).
func Ring(score int, radius float64) RingMetrics {
	score = ClampScore(float64(score))
	circumference := 2 * math.Pi * radius

	return RingMetrics{
		Score:         score,
		Radius:        radius,
		Circumference: circumference,
		DashArray:     circumference,
		DashOffset:    circumference * (1 - float64(score)/100),
	}
}

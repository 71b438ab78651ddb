package tracker

import (
	"context"
	"math"
	"time"

	"github.com/jobscout/jobscout/internal/utils"
)

const (
	// DefaultRevealDuration is how long the displayed score takes to climb
	// from 0 to the resolved value.
	DefaultRevealDuration = 900 * time.Millisecond

	frameInterval = 33 * time.Millisecond
)

// Reveal returns the displayed value at elapsed time into the score-reveal
// animation, following an ease-out-cubic curve:
//
//	displayed = round(target * (1 - (1-k)^3)), k = clamp(elapsed/duration, 0, 1)
//
// At k >= 1 the result is exactly target.
func Reveal(target int, elapsed, duration time.Duration) int {
	if duration <= 0 || elapsed >= duration {
		return target
	}
	if elapsed <= 0 {
		return 0
	}

	k := float64(elapsed) / float64(duration)

	return int(math.Round(float64(target) * (1 - math.Pow(1-k, 3))))
}

// Animation animates a displayed score from 0 to Target. A new result means
// a new Animation: the reveal always restarts from 0.
type Animation struct {
	Target   int
	Duration time.Duration

	started time.Time
}

func NewAnimation(target int, duration time.Duration, started time.Time) *Animation {
	if duration <= 0 {
		duration = DefaultRevealDuration
	}

	return &Animation{Target: target, Duration: duration, started: started}
}

// ValueAt returns the displayed value at the given instant and whether the
// animation has finished. Once finished the value equals Target exactly.
func (a *Animation) ValueAt(now time.Time) (int, bool) {
	elapsed := now.Sub(a.started)
	value := Reveal(a.Target, elapsed, a.Duration)

	return value, elapsed >= a.Duration
}

// Run drives the animation against wall-clock time, invoking frame on every
// tick until the target is shown or the context is canceled mid-flight.
func (a *Animation) Run(ctx context.Context, frame func(int)) error {
	for {
		value, finished := a.ValueAt(time.Now())
		frame(value)
		if finished {
			return nil
		}

		if err := utils.WaitFor(ctx, frameInterval); err != nil {
			return err
		}
	}
}

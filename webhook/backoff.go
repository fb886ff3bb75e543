package webhook

import (
	"math"
	"time"
)

// Backoff calculates retry delays using exponential growth with a ceiling.
// Formula: min(Initial * 2^(attempt-1), Max). No jitter: the schedule must be
// reproducible so operators can predict when a delivery will be retried.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
}

// Delay returns the wait before the next attempt, given the number of
// attempts already made. Attempt starts at 1 for the first failure.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := b.Initial
	if initial == 0 {
		initial = time.Minute
	}

	max := b.Max
	if max == 0 {
		max = time.Hour
	}

	delay := float64(initial) * math.Pow(2, float64(attempt-1))
	if delay > float64(max) {
		return max
	}

	return time.Duration(delay)
}

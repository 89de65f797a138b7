package acquire

import "time"

// Backoff returns the delay before retry n (1-based): the base delay
// doubled per retry, never exceeding limit. Once a doubling reaches the
// limit every later retry waits the limit.
func Backoff(base, limit time.Duration, retry int) time.Duration {
	if base > limit {
		return limit
	}

	d := base
	for i := 1; i < retry; i++ {
		d *= 2
		if d >= limit || d <= 0 {
			return limit
		}
	}
	return d
}

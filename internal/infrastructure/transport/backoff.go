package transport

import "time"

// Backoff computes the wait before a retry: base doubled per attempt,
// capped at Max.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns the wait after a failed attempt. Attempts count from 1.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return min(b.Base*time.Duration(1<<(attempt-1)), b.Max)
}

package usecase

import "time"

// backoffDelay returns the wait before connect attempt k (1-based): base
// doubled per consecutive failure, capped at ceiling. Non-decreasing in k.
func backoffDelay(attempt int, base, ceiling time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= ceiling {
			return ceiling
		}
	}
	if d > ceiling {
		return ceiling
	}
	return d
}

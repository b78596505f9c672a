// Package backoff provides delay schedules for retry.Backoff.
package backoff

import (
	"math"
	"time"
)

// Strategy returns the delay before the next attempt. attempts starts at 1.
type Strategy func(attempts uint) time.Duration

// Constant returns a strategy that always waits interval.
func Constant(interval time.Duration) Strategy {
	return func(uint) time.Duration {
		return interval
	}
}

// BinaryExponential returns a strategy that starts at baseDelay and doubles
// on every attempt, saturating at the largest representable duration.
//
// Ex. BinaryExponential(2*time.Second) = 2s, 4s, 8s, 16s, ...
func BinaryExponential(baseDelay time.Duration) Strategy {
	return func(attempts uint) time.Duration {
		delay := baseDelay
		for i := uint(1); i < attempts; i++ {
			if delay > math.MaxInt64/2 {
				return math.MaxInt64
			}
			delay *= 2
		}
		return delay
	}
}

package retry

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/gamba-labs/gamba-go/pkg/retry/backoff"
)

// Strategy decides whether an action is attempted again after failing. It
// may block, which is how backoff is applied.
type Strategy func(attempts uint, err error) bool

var sleep = time.Sleep

// Limit stops after maxAttempts attempts, including the first.
func Limit(maxAttempts uint) Strategy {
	return func(attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors only retries errors matching one of retriable, including
// wrapped ones.
func RetriableErrors(retriable ...error) Strategy {
	return func(_ uint, err error) bool {
		for _, target := range retriable {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// Backoff sleeps for the delay given by strategy, capped at maxBackoff.
func Backoff(strategy backoff.Strategy, maxBackoff time.Duration) Strategy {
	return BackoffWithJitter(strategy, maxBackoff, 0)
}

// BackoffWithJitter is Backoff with the capped delay randomly moved by up to
// jitter of itself in either direction. A jitter of 0.1 turns 100ms into
// somewhere between 90ms and 110ms.
func BackoffWithJitter(strategy backoff.Strategy, maxBackoff time.Duration, jitter float64) Strategy {
	return func(attempts uint, _ error) bool {
		delay := strategy(attempts)
		if delay > maxBackoff {
			delay = maxBackoff
		}

		if jitter > 0 {
			delay += time.Duration(float64(delay) * jitter * (2*rand.Float64() - 1))
		}

		sleep(delay)
		return true
	}
}

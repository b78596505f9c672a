package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gamba-labs/gamba-go/pkg/retry/backoff"
)

func TestRetry_Sleeps(t *testing.T) {
	start := time.Now()
	n, err := Retry(func() error { return errors.New("err") },
		Limit(2),
		Backoff(backoff.Constant(500*time.Millisecond), 500*time.Millisecond),
	)

	assert.NotNil(t, err)
	assert.EqualValues(t, 2, n)
	assert.True(t, 500*time.Millisecond <= time.Since(start))
	assert.True(t, 1*time.Second > time.Since(start))
}

func TestRetrier(t *testing.T) {
	retriableErr := errors.New("retriable")
	r := NewRetrier(Limit(5), RetriableErrors(retriableErr))

	attempts, err := r.Retry(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, uint(1), attempts)

	// Either strategy declining ends the loop.
	attempts, err = r.Retry(func() error { return errors.New("unknown") })
	assert.Error(t, err)
	assert.Equal(t, uint(1), attempts)

	attempts, err = r.Retry(func() error { return retriableErr })
	assert.Equal(t, retriableErr, err)
	assert.Equal(t, uint(5), attempts)
}

func TestRetryContext_StopsWhenDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	attempts, err := RetryContext(ctx, func() error {
		calls++
		if calls == 3 {
			cancel()
		}
		return errors.New("unavailable")
	})

	assert.Equal(t, context.Canceled, err)
	assert.EqualValues(t, 3, attempts)
	assert.Equal(t, 3, calls)
}

func TestRetryContext_Succeeds(t *testing.T) {
	var calls int
	attempts, err := NewRetrier(Limit(5)).RetryContext(context.Background(), func() error {
		calls++
		if calls < 2 {
			return errors.New("unavailable")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.EqualValues(t, 2, attempts)
}

package retry

import (
	"context"
)

// Action is a function to be performed in a retriable manner.
type Action func() error

// Retrier retries actions with a fixed set of strategies.
type Retrier interface {
	Retry(action Action) (uint, error)
	RetryContext(ctx context.Context, action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier applying strategies in order. Without any
// strategies the action is retried until it succeeds.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{
		strategies: strategies,
	}
}

func (r *retrier) Retry(action Action) (uint, error) {
	return Retry(action, r.strategies...)
}

func (r *retrier) RetryContext(ctx context.Context, action Action) (uint, error) {
	return RetryContext(ctx, action, r.strategies...)
}

// Retry runs action until it succeeds or a strategy declines another
// attempt, returning the number of attempts and the last error.
//
// Strategies run in order, so those that sleep belong last.
func Retry(action Action, strategies ...Strategy) (uint, error) {
	return RetryContext(context.Background(), action, strategies...)
}

// RetryContext is Retry that also gives up once ctx is done, returning the
// context's error.
func RetryContext(ctx context.Context, action Action, strategies ...Strategy) (uint, error) {
	for attempts := uint(1); ; attempts++ {
		err := action()
		if err == nil {
			return attempts, nil
		}

		for _, s := range strategies {
			if !s(attempts, err) {
				return attempts, err
			}
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return attempts, ctxErr
		}
	}
}

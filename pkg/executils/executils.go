package executils

import "context"

type result[T any] struct {
	val T
	err error
}

// Await runs fn in its own goroutine and returns whichever comes first: its
// result or ctx being done. fn keeps running after ctx is done, its result is
// dropped.
func Await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	done := make(chan result[T], 1)
	go func() {
		val, err := fn()
		done <- result[T]{val: val, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, context.Cause(ctx)
	case r := <-done:
		return r.val, r.err
	}
}

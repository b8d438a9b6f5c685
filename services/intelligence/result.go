package ai

// Result is the outcome of a call to an external collaborator. Callers pick
// their fallback explicitly with OrElse.
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// resultOf adapts a (value, error) pair.
func resultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Failed[T](err)
	}
	return Ok(v)
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// OrElse returns the value, or fallback when the call failed.
func (r Result[T]) OrElse(fallback T) T {
	if r.Err != nil {
		return fallback
	}
	return r.Value
}

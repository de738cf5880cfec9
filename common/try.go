package common

import (
	"runtime"
	"runtime/debug"
)

// Try runs f and turns a panic carrying an error value into a returned error.
// Runtime errors and non-error panic values are bugs and are re-raised.
func Try[T any](f func() T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	return f(), nil
}

// TryStack is Try but also reports the stack where the panic happened.
func TryStack[T any](f func() T) (result T, err error, stack string) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
			stack = string(debug.Stack())
		}
	}()
	return f(), nil, ""
}

func asError(r any) error {
	if _, ok := r.(runtime.Error); ok {
		panic(r)
	}
	err, ok := r.(error)
	if !ok {
		panic(r)
	}
	return err
}

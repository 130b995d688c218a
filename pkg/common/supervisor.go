package common

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/matst80/slask-view/pkg/logger"
)

// PanicError is a recovered panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Guard runs fn and converts a panic into an error, returning fallback in
// its place.
func Guard[T any](fallback T, fn func() T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = fallback
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn(), nil
}

// GuardDo is Guard for functions without a result.
func GuardDo(fn func()) error {
	_, err := Guard(struct{}{}, func() struct{} {
		fn()
		return struct{}{}
	})
	return err
}

// Recover answers 500 when a handler panics.
func Recover(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				log.Error("handler panicked", "path", r.URL.Path, "panic", p, "stack", string(debug.Stack()))
				WriteJson(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

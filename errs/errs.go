// Package errs defines the sentinel errors shared by every xsg-go container.
package errs

import (
	"errors"

	"github.com/GerHobbelt/xsg-go/pkg/xerrors"
)

var (
	// ErrAlloc is returned when node or rebuild-scratch allocation fails
	// during insert or rebuild.
	//
	// Go's allocator does not normally surface out-of-memory as a
	// recoverable error, so in practice this is reachable only if the
	// runtime raises it as a panic that the container's recover frame can
	// classify as such.
	ErrAlloc = errors.New("xsg: allocation failed")

	// ErrComparatorPanic is returned when the caller-supplied comparator
	// panics during a descent. The tree is left exactly as it was before
	// the call that triggered it.
	ErrComparatorPanic = errors.New("xsg: comparator panicked")

	// ErrNotFound is returned by operations that require an existing key
	// or cursor and did not find one.
	ErrNotFound = errors.New("xsg: not found")
)

// Recover classifies a recovered panic value into one of the sentinels
// above, wrapping the original value for %w-based inspection. Call it from
// a deferred function at the outermost frame of any mutator; recovering
// anywhere deeper would leave the tree in a half-spliced state.
func Recover(r any) error {
	if r == nil {
		return nil
	}

	if _, ok := r.(error); ok {
		if re, ok := r.(interface{ RuntimeError() }); ok {
			_ = re

			return &wrapped{ErrAlloc, r}
		}
	}

	return &wrapped{ErrComparatorPanic, r}
}

type wrapped struct {
	sentinel error
	cause    any
}

func (w *wrapped) Error() string {
	return w.sentinel.Error() + ": " + errString(w.cause)
}

// Is reports whether target is the sentinel this panic was classified
// under, so errors.Is(err, ErrComparatorPanic) works through the wrapper.
func (w *wrapped) Is(target error) bool { return target == w.sentinel }

// Unwrap exposes the original panic value when it was itself an error,
// letting errors.As/errs.As reach past the sentinel to the real cause.
func (w *wrapped) Unwrap() error {
	if err, ok := w.cause.(error); ok {
		return err
	}

	return nil
}

// As reports whether err wraps a cause of type T, unwrapping through any
// number of Recover-produced layers. Callers use this to recover the
// original comparator panic value rather than just its sentinel class.
func As[T error](err error) (T, bool) {
	return xerrors.AsA[T](err)
}

func errString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}

	if s, ok := v.(string); ok {
		return s
	}

	return "non-error panic value"
}

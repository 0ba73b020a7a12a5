package promise

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrPromiseSettled is returned by the Resolve and Reject methods once
	// the promise's completion pair has been used.
	ErrPromiseSettled = errors.New("promise: already settled")

	// ErrSelfResolution rejects a promise that was resolved with itself.
	ErrSelfResolution = errors.New("promise: cannot resolve a promise with itself")

	// ErrAdoptionDepth rejects a promise whose thenable adoption chain
	// exceeded maxAdoptionDepth hops.
	ErrAdoptionDepth = errors.New("promise: thenable adoption chain too deep")
)

// AggregateError is the rejection reason produced by Some when every input
// has rejected. Reasons holds the per-input reasons in input order.
type AggregateError struct {
	Reasons []error
}

func (e *AggregateError) Error() string {
	var b strings.Builder

	b.WriteString("promise: all inputs rejected:")
	for _, reason := range e.Reasons {
		b.WriteString(" [")
		if nil != reason {
			b.WriteString(reason.Error())
		} else {
			b.WriteString("<nil>")
		}
		b.WriteString("]")
	}

	return b.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Reasons
}

// recoveredError converts a recovered panic value into a rejection reason.
// Error values pass through verbatim; anything else is wrapped with a stack.
func recoveredError(v interface{}) error {
	if err, ok := v.(error); ok {
		return err
	}

	return errors.Errorf("promise: recovered panic: %v", v)
}

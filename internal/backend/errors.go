package backend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoBackendsFound is returned by Registry.Load when nothing was loaded.
var ErrNoBackendsFound = errors.New("no backends found")

// DuplicateBackendError reports two sources declaring the same backend name.
type DuplicateBackendError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateBackendError) Error() string {
	return fmt.Sprintf("there are two backends named %q (%s and %s)", e.Name, e.First, e.Second)
}

// PasteSubmissionError wraps a failure of a backend's paste call.
type PasteSubmissionError struct {
	Backend string
	Err     error
}

func (e *PasteSubmissionError) Error() string {
	return fmt.Sprintf("pasting to %s failed: %v", e.Backend, e.Err)
}

func (e *PasteSubmissionError) Unwrap() error { return e.Err }

// UnknownBackendError is returned when an abbreviated name matches nothing.
type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend %q", e.Name)
}

// InvalidExpiryError is returned when a requested expiry is not one of the
// backend's choices.
type InvalidExpiryError struct {
	Value   string
	Choices []int
}

func (e *InvalidExpiryError) Error() string {
	choices := make([]string, len(e.Choices))
	for i, c := range e.Choices {
		choices[i] = strconv.Itoa(c)
	}
	return fmt.Sprintf("invalid expiry %q, should be one of %s", e.Value, strings.Join(choices, ","))
}

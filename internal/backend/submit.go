package backend

import (
	"context"

	"github.com/google/uuid"
)

// Result is the single terminal message of a Submission.
type Result struct {
	ID      string
	Backend string
	URL     string
	Err     error
}

// Submission is one paste running in the background.
type Submission struct {
	ID      string
	Backend string
	done    chan Result
}

// Submit starts pasting req to b on its own goroutine. Exactly one Result is
// delivered on Done. The channel is buffered, so the worker finishes even if
// nobody is left to read the result.
func Submit(ctx context.Context, b Backend, req Request) *Submission {
	s := &Submission{
		ID:      uuid.NewString(),
		Backend: b.Descriptor().Name,
		done:    make(chan Result, 1),
	}
	go func() {
		url, err := Paste(ctx, b, req)
		s.done <- Result{ID: s.ID, Backend: s.Backend, URL: url, Err: err}
		close(s.done)
	}()
	return s
}

func (s *Submission) Done() <-chan Result {
	return s.done
}

// Wait blocks until the result arrives or ctx ends.
func (s *Submission) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-s.done:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

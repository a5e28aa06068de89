// Package clipboard copies paste URLs to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned by Service.Copy when no clipboard utility
// (xclip, xsel, wl-copy, ...) could be found.
var ErrUnavailable = errors.New("no clipboard utility found")

// Copier copies text to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier with github.com/atotto/clipboard.
type Service struct {
	available func() bool
}

func NewService() *Service {
	return &Service{available: Available}
}

func (s *Service) Copy(text string) error {
	if s.available != nil && !s.available() {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard utility was found.
func Available() bool {
	return !clipboard.Unsupported
}

var _ Copier = (*Service)(nil)

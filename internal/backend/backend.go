// Package backend holds the pastebin backend registry and the adapter that
// turns a generic paste request into the arguments a backend declared.
package backend

import (
	"context"
	"fmt"
	"slices"
)

// Param names one paste argument a backend can accept.
type Param string

const (
	ParamContent  Param = "content"
	ParamExpiry   Param = "expiry"
	ParamSyntax   Param = "syntax"
	ParamTitle    Param = "title"
	ParamUsername Param = "username"
)

// KnownParams lists every Param in canonical order.
var KnownParams = []Param{ParamContent, ParamExpiry, ParamSyntax, ParamTitle, ParamUsername}

// NeverExpires is the expiry value for pastes the service keeps forever.
const NeverExpires = -1

// Descriptor describes what a backend is and which arguments it takes.
type Descriptor struct {
	Name          string            `json:"name" yaml:"name"`
	URL           string            `json:"url,omitempty" yaml:"url,omitempty"`
	ExpiryDays    []int             `json:"expiry_days" yaml:"expiry_days"`
	SyntaxChoices map[string]string `json:"syntax_choices,omitempty" yaml:"syntax_choices,omitempty"`
	SyntaxDefault string            `json:"syntax_default,omitempty" yaml:"syntax_default,omitempty"`
	PasteArgs     []Param           `json:"paste_args" yaml:"paste_args"`
}

// Supports reports whether p is in PasteArgs.
func (d Descriptor) Supports(p Param) bool {
	return slices.Contains(d.PasteArgs, p)
}

// DefaultExpiry returns the first expiry choice.
func (d Descriptor) DefaultExpiry() int {
	if len(d.ExpiryDays) == 0 {
		return NeverExpires
	}
	return d.ExpiryDays[0]
}

// Validate checks the invariants every loaded backend must hold.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("backend name is empty")
	}
	if !d.Supports(ParamContent) {
		return fmt.Errorf("backend %q: paste_args must contain %q", d.Name, ParamContent)
	}
	for _, p := range d.PasteArgs {
		if !slices.Contains(KnownParams, p) {
			return fmt.Errorf("backend %q: unknown paste arg %q", d.Name, p)
		}
	}
	if len(d.ExpiryDays) == 0 {
		return fmt.Errorf("backend %q: expiry_days is empty", d.Name)
	}
	return nil
}

// Backend is a pastebin service integration.
type Backend interface {
	Descriptor() Descriptor
	// Paste submits content and returns the URL of the new paste. args holds
	// exactly the parameters named in Descriptor().PasteArgs.
	Paste(ctx context.Context, args Args) (string, error)
}

// Args holds the arguments forwarded to Backend.Paste.
type Args map[Param]any

func (a Args) Content() string {
	s, _ := a[ParamContent].(string)
	return s
}

func (a Args) Expiry() (int, bool) {
	v, ok := a[ParamExpiry].(int)
	return v, ok
}

func (a Args) Syntax() (string, bool) {
	v, ok := a[ParamSyntax].(string)
	return v, ok
}

func (a Args) Title() (string, bool) {
	v, ok := a[ParamTitle].(string)
	return v, ok
}

func (a Args) Username() (string, bool) {
	v, ok := a[ParamUsername].(string)
	return v, ok
}

// Request is a paste the user asked for, before it is adapted to a backend.
type Request struct {
	Content  string
	Expiry   *int
	Syntax   string
	Title    string
	Username string
}

// Func adapts a descriptor and a function to the Backend interface.
type Func struct {
	Desc Descriptor
	Fn   func(ctx context.Context, args Args) (string, error)
}

func (f *Func) Descriptor() Descriptor { return f.Desc }

func (f *Func) Paste(ctx context.Context, args Args) (string, error) {
	return f.Fn(ctx, args)
}

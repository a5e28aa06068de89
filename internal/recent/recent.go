// Package recent keeps the most-recent-first list of pasted URLs.
package recent

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrUnsupportedOperation is returned by Slice. The list is indexed one
	// entry at a time only.
	ErrUnsupportedOperation = errors.New("cannot slice a recent paste list")
	ErrIndexOutOfRange      = errors.New("recent paste index out of range")
)

// Entry is one recent paste.
type Entry struct {
	URL   string
	Title string
}

// MarshalJSON writes the entry as a [url, title] pair.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.URL, e.Title})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) == 0 || len(pair) > 2 {
		return fmt.Errorf("recent paste must be [url] or [url, title], got %d items", len(pair))
	}
	e.URL, e.Title = pair[0], ""
	if len(pair) == 2 {
		e.Title = pair[1]
	}
	return nil
}

// List is like a bounded deque whose bound can change. New entries go to the
// front and entries past maxlen fall off the back. A negative maxlen means
// unbounded; zero keeps nothing.
type List struct {
	entries []Entry
	maxlen  int
}

func New(maxlen int) *List {
	return &List{maxlen: maxlen}
}

// Add inserts a paste at the front. An empty title defaults to the URL.
func (l *List) Add(url, title string) {
	if title == "" {
		title = url
	}
	l.entries = append([]Entry{{URL: url, Title: title}}, l.entries...)
	l.truncate()
}

func (l *List) MaxLen() int {
	return l.maxlen
}

// SetMaxLen changes the bound and drops anything beyond it right away.
func (l *List) SetMaxLen(n int) {
	l.maxlen = n
	l.truncate()
}

func (l *List) truncate() {
	if l.maxlen >= 0 && len(l.entries) > l.maxlen {
		clear(l.entries[l.maxlen:])
		l.entries = l.entries[:l.maxlen]
	}
}

func (l *List) Clear() {
	l.entries = nil
}

func (l *List) Len() int {
	return len(l.entries)
}

// At returns the i-th most recent paste. Negative indices count from the
// oldest end.
func (l *List) At(i int) (Entry, error) {
	if i < 0 {
		i += len(l.entries)
	}
	if i < 0 || i >= len(l.entries) {
		return Entry{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return l.entries[i], nil
}

func (l *List) Slice(i, j int) ([]Entry, error) {
	return nil, ErrUnsupportedOperation
}

// All iterates from the most recent paste to the oldest.
func (l *List) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range l.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Entries returns a copy of the list, most recent first.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

package recent

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/qastetray/cli/internal/settings"
)

const (
	section   = "RecentPastes"
	keyJSON   = "json"
	keyMaxLen = "maxlen"
)

// Settings is the part of the settings store the list is persisted in.
type Settings interface {
	Get(section, key string) (string, error)
	GetInt(section, key string) (int, error)
	Set(section, key, value string)
	SetInt(section, key string, value int)
	AddPostfunc(section, key string, fn func(value string), runNow bool) settings.PostfuncID
}

// Load replaces the contents of l with what s holds. Entries are replayed
// oldest first so the stored order is kept. When the stored list can't be
// parsed, l is left empty with its limit applied.
func Load(l *List, s Settings) error {
	maxlen, err := s.GetInt(section, keyMaxLen)
	if err != nil {
		return fmt.Errorf("failed to read recent paste limit: %w", err)
	}
	l.Clear()
	l.SetMaxLen(maxlen)

	raw, err := s.Get(section, keyJSON)
	if err != nil {
		return fmt.Errorf("failed to read recent pastes: %w", err)
	}

	var entries []Entry
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return fmt.Errorf("failed to parse recent pastes: %w", err)
		}
	}

	for i := len(entries) - 1; i >= 0; i-- {
		l.Add(entries[i].URL, entries[i].Title)
	}
	return nil
}

// Save stores l in s. The caller saves s.
func Save(l *List, s Settings) error {
	entries := l.Entries()
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode recent pastes: %w", err)
	}
	s.Set(section, keyJSON, string(data))
	s.SetInt(section, keyMaxLen, l.MaxLen())
	return nil
}

// BindMaxLen keeps l's bound in sync with the maxlen setting. Values that
// aren't integers are ignored.
func BindMaxLen(l *List, s Settings) {
	s.AddPostfunc(section, keyMaxLen, func(value string) {
		if n, err := strconv.Atoi(value); err == nil {
			l.SetMaxLen(n)
		}
	}, false)
}

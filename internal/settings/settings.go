// Package settings stores QasteTray's INI settings: packaged defaults with a
// per-user overlay, plus hooks that run whenever a key changes.
package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"gopkg.in/ini.v1"
)

//go:embed defaults.conf
var Defaults []byte

var (
	ErrNotFound         = errors.New("no such setting")
	ErrPostfuncNotFound = errors.New("postfunc is not registered")
)

var loadOptions = ini.LoadOptions{
	Loose:               true,
	IgnoreInlineComment: true,
	IgnoreContinuation:  true,
}

// PostfuncID identifies a registered postfunc for RemovePostfunc.
type PostfuncID uint64

type hookKey struct {
	section, key string
}

// Store reads the packaged defaults and the user's file. Reads prefer the
// user's value; writes only ever go to the user's file.
type Store struct {
	defaultsData []byte
	userPath     string

	mu        sync.RWMutex
	defaults  *ini.File
	user      *ini.File
	postfuncs map[hookKey]map[PostfuncID]func(string)
	nextID    PostfuncID
}

func NewStore(defaults []byte, userPath string) *Store {
	return &Store{
		defaultsData: defaults,
		userPath:     userPath,
		defaults:     ini.Empty(loadOptions),
		user:         ini.Empty(loadOptions),
		postfuncs:    make(map[hookKey]map[PostfuncID]func(string)),
	}
}

// Path returns the user settings file.
func (s *Store) Path() string {
	return s.userPath
}

// Load reads the defaults and then the user file. A missing user file is not
// an error. Postfuncs do not run on Load.
func (s *Store) Load() error {
	defaults, err := ini.LoadSources(loadOptions, s.defaultsData)
	if err != nil {
		return fmt.Errorf("failed to parse default settings: %w", err)
	}

	var user *ini.File
	if s.userPath == "" {
		user = ini.Empty(loadOptions)
	} else {
		user, err = ini.LoadSources(loadOptions, s.userPath)
		if err != nil {
			return fmt.Errorf("failed to read settings file %s: %w", s.userPath, err)
		}
	}

	s.mu.Lock()
	s.defaults, s.user = defaults, user
	s.mu.Unlock()
	return nil
}

// Save writes the user's settings, creating the directory when needed.
func (s *Store) Save() error {
	if s.userPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.userPath), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.user.SaveTo(s.userPath); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (s *Store) lookup(section, key string) (*ini.Key, bool) {
	for _, f := range []*ini.File{s.user, s.defaults} {
		sec, err := f.GetSection(section)
		if err != nil || !sec.HasKey(key) {
			continue
		}
		return sec.Key(key), true
	}
	return nil, false
}

func (s *Store) Has(section, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.lookup(section, key)
	return ok
}

func (s *Store) Get(section, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.lookup(section, key)
	if !ok {
		return "", fmt.Errorf("%w: [%s] %s", ErrNotFound, section, key)
	}
	return k.String(), nil
}

// GetDefault is Get with a fallback for missing keys.
func (s *Store) GetDefault(section, key, fallback string) string {
	v, err := s.Get(section, key)
	if err != nil {
		return fallback
	}
	return v
}

func (s *Store) GetInt(section, key string) (int, error) {
	v, err := s.Get(section, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("[%s] %s is not an integer: %q", section, key, v)
	}
	return n, nil
}

func (s *Store) GetFloat(section, key string) (float64, error) {
	v, err := s.Get(section, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("[%s] %s is not a number: %q", section, key, v)
	}
	return f, nil
}

// GetBool accepts yes/no, true/false, on/off and 1/0.
func (s *Store) GetBool(section, key string) (bool, error) {
	s.mu.RLock()
	k, ok := s.lookup(section, key)
	s.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("%w: [%s] %s", ErrNotFound, section, key)
	}
	b, err := k.Bool()
	if err != nil {
		return false, fmt.Errorf("[%s] %s is not a boolean: %q", section, key, k.String())
	}
	return b, nil
}

// Set stores value in the user layer and runs the key's postfuncs. It does
// not save.
func (s *Store) Set(section, key, value string) {
	s.mu.Lock()
	s.user.Section(section).Key(key).SetValue(value)
	funcs := make([]func(string), 0, len(s.postfuncs[hookKey{section, key}]))
	for _, fn := range s.postfuncs[hookKey{section, key}] {
		funcs = append(funcs, fn)
	}
	s.mu.Unlock()

	for _, fn := range funcs {
		fn(value)
	}
}

func (s *Store) SetInt(section, key string, value int) {
	s.Set(section, key, strconv.Itoa(value))
}

func (s *Store) SetFloat(section, key string, value float64) {
	s.Set(section, key, strconv.FormatFloat(value, 'g', -1, 64))
}

func (s *Store) SetBool(section, key string, value bool) {
	if value {
		s.Set(section, key, "yes")
	} else {
		s.Set(section, key, "no")
	}
}

// AddPostfunc registers fn to be called with the new value whenever
// section/key is Set. With runNow, fn is also called once right away with
// the current value.
func (s *Store) AddPostfunc(section, key string, fn func(value string), runNow bool) PostfuncID {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	hk := hookKey{section, key}
	if s.postfuncs[hk] == nil {
		s.postfuncs[hk] = make(map[PostfuncID]func(string))
	}
	s.postfuncs[hk][id] = fn
	s.mu.Unlock()

	if runNow {
		fn(s.GetDefault(section, key, ""))
	}
	return id
}

func (s *Store) RemovePostfunc(section, key string, id PostfuncID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hk := hookKey{section, key}
	if _, ok := s.postfuncs[hk][id]; !ok {
		return fmt.Errorf("%w: [%s] %s", ErrPostfuncNotFound, section, key)
	}
	delete(s.postfuncs[hk], id)
	if len(s.postfuncs[hk]) == 0 {
		delete(s.postfuncs, hk)
	}
	return nil
}

// Sections returns the names of all non-empty sections, sorted.
func (s *Store) Sections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for _, f := range []*ini.File{s.defaults, s.user} {
		for _, sec := range f.Sections() {
			if sec.Name() == ini.DefaultSection && len(sec.Keys()) == 0 {
				continue
			}
			if !slices.Contains(names, sec.Name()) {
				names = append(names, sec.Name())
			}
		}
	}
	slices.Sort(names)
	return names
}

// Keys returns the keys of section in either layer, sorted.
func (s *Store) Keys(section string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for _, f := range []*ini.File{s.defaults, s.user} {
		sec, err := f.GetSection(section)
		if err != nil {
			continue
		}
		for _, k := range sec.KeyStrings() {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)
	return keys
}

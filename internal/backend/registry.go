package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/qastetray/cli/internal/logger"
)

// Loader builds a backend from a file found in a search directory.
type Loader func(path string) (Backend, error)

var backendFilename = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z]+)?$`)

// Registry maps backend names to loaded backends.
type Registry struct {
	dirs     []string
	loaders  map[string]Loader
	builtins []Backend
	logger   logger.Logger

	backends map[string]Backend
	sources  map[string]string
	// abbrevs maps Abbreviate(name) to name.
	abbrevs map[string]string
}

func NewRegistry(dirs []string, log logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop{}
	}
	return &Registry{
		dirs:     dirs,
		loaders:  make(map[string]Loader),
		logger:   log,
		backends: make(map[string]Backend),
		sources:  make(map[string]string),
		abbrevs:  make(map[string]string),
	}
}

// RegisterLoader registers a loader for files ending in ext (".yaml").
func (r *Registry) RegisterLoader(ext string, l Loader) {
	r.loaders[ext] = l
}

// Install adds compiled-in backends. They are inserted on every Load before
// the search directories are scanned.
func (r *Registry) Install(backends ...Backend) {
	r.builtins = append(r.builtins, backends...)
}

// Load discards the current backends and loads them again.
func (r *Registry) Load() error {
	r.backends = make(map[string]Backend)
	r.sources = make(map[string]string)
	r.abbrevs = make(map[string]string)

	for _, b := range r.builtins {
		if err := r.insert(b, "builtin:"+b.Descriptor().Name); err != nil {
			return err
		}
	}

	for _, dir := range r.dirs {
		if err := r.scanDirectory(dir); err != nil {
			return err
		}
	}

	if len(r.backends) == 0 {
		return ErrNoBackendsFound
	}
	logger.With(r.logger, "backends loaded", "count", len(r.backends))
	return nil
}

func (r *Registry) scanDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.With(r.logger, "backend directory does not exist", "dir", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read backend directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := backendFilename.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		loader, ok := r.loaders[match[1]]
		if !ok {
			logger.With(r.logger, "no loader for backend file", "file", entry.Name())
			continue
		}

		path := filepath.Join(dir, entry.Name())
		b, err := loader(path)
		if err != nil {
			return fmt.Errorf("failed to load backend %s: %w", path, err)
		}
		if err := r.insert(b, path); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) insert(b Backend, source string) error {
	d := b.Descriptor()
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid backend from %s: %w", source, err)
	}
	if first, exists := r.sources[d.Name]; exists {
		return &DuplicateBackendError{Name: d.Name, First: first, Second: source}
	}
	abbrev := Abbreviate(d.Name)
	if other, exists := r.abbrevs[abbrev]; exists {
		return &DuplicateBackendError{Name: abbrev, First: r.sources[other], Second: source}
	}
	r.backends[d.Name] = b
	r.sources[d.Name] = source
	r.abbrevs[abbrev] = d.Name
	logger.With(r.logger, "backend loaded", "name", d.Name, "source", source)
	return nil
}

func (r *Registry) Get(name string) (Backend, bool) {
	b, ok := r.backends[name]
	return b, ok
}

// Source returns where the named backend was loaded from.
func (r *Registry) Source(name string) string {
	return r.sources[name]
}

func (r *Registry) All() map[string]Backend {
	// Return a shallow copy to avoid external mutation
	out := make(map[string]Backend, len(r.backends))
	for k, v := range r.backends {
		out[k] = v
	}
	return out
}

// Names returns backend names sorted case-insensitively.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// Lookup finds a backend by its abbreviated name.
func (r *Registry) Lookup(abbreviated string) (Backend, error) {
	if name, ok := r.abbrevs[abbreviated]; ok {
		return r.backends[name], nil
	}
	return nil, &UnknownBackendError{Name: abbreviated}
}

// Abbreviate returns the command-line form of a backend name:
// "GitHub Gist" becomes "github-gist".
func Abbreviate(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

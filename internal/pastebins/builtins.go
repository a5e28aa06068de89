package pastebins

import "github.com/qastetray/cli/internal/backend"

// Builtins returns the backends compiled into the binary.
func Builtins(opts Options) []backend.Backend {
	return []backend.Backend{
		NewDpaste(opts),
		NewGist(opts),
		NewHastebin(opts),
	}
}

// Configure installs the built-in backends and the manifest loaders on r.
func Configure(r *backend.Registry, opts Options) {
	r.Install(Builtins(opts)...)
	yamlLoader := YAMLLoader(opts)
	r.RegisterLoader(".yaml", yamlLoader)
	r.RegisterLoader(".yml", yamlLoader)
	r.RegisterLoader(".json", JSONLoader(opts))
}

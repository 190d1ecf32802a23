package algorithm

import (
	"sort"

	"github.com/pffbench/pff/internal/errdefs"
)

const (
	NameClassical = "classical"
	NameShor      = "shor"
)

// Constructor builds a configured algorithm.
type Constructor func(cfg Config) (*Algorithm, error)

var registry = map[string]Constructor{
	NameClassical: NewClassical,
	NameShor:      NewShor,
}

// New creates an algorithm from the registry by name.
func New(name string, cfg Config) (*Algorithm, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, errdefs.Configuration("'%s' is not a valid algorithm", name)
	}
	return ctor(cfg)
}

// Names lists the registered algorithms in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Factory returns a function that builds a fresh instance of the named
// algorithm on each call, for runs that must not share instances.
func Factory(name string, cfg Config) func() (Factorizer, error) {
	return func() (Factorizer, error) {
		return New(name, cfg)
	}
}

package backend

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds an Analyzer from connection settings.
type Constructor func(cfg Config) (Analyzer, error)

var (
	mu       sync.RWMutex
	registry = map[string]Constructor{}
)

// Register adds a backend constructor under the given provider name.
func Register(name string, ctor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ctor
}

// Get returns the backend constructor for the given provider name.
func Get(name string) (Constructor, error) {
	mu.RLock()
	defer mu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend provider: %s", name)
	}
	return ctor, nil
}

// New resolves the provider and constructs it.
func New(name string, cfg Config) (Analyzer, error) {
	ctor, err := Get(name)
	if err != nil {
		return nil, err
	}
	a, err := ctor(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return a, nil
}

// Providers returns the names of all registered backend providers, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

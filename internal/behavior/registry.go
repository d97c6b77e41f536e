package behavior

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a strategy instance. The seed feeds strategies that need
// randomness; deterministic ones ignore it.
type Factory func(seed int64) Behavior

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Panics if a strategy with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("behavior: strategy %q already registered", name))
	}
	factories[name] = f
}

// Create instantiates a strategy by name.
func Create(name string, seed int64) (Behavior, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("behavior: unknown strategy %q", name)
	}
	return f(seed), nil
}

// Exists checks if a strategy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

// List returns the registered strategy names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("chase", func(int64) Behavior { return Chase{Surge: DefaultSurge} })
	Register("idle", func(int64) Behavior { return Idle{} })
	Register("jitter", func(seed int64) Behavior { return NewJitter(seed, 0.6) })
}

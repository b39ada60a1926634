// Package registry provides a global registry of playable mode presets.
// Presets register themselves in init() functions, allowing the CLI and the
// TUI menu to discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// Factory builds an engine config for a preset. A nil or empty players list
// means the preset's default seats.
type Factory func(size int, players []squares.PlayerID) squares.Config

// Info contains metadata about a registered preset.
type Info struct {
	ID          string
	Title       string
	Description string
	Mode        squares.Mode
}

type entry struct {
	info    Info
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a preset to the registry.
// Panics if a preset with the same ID is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns all registered presets, sorted by mode then ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Mode != result[j].Mode {
			return result[i].Mode < result[j].Mode
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns a preset's metadata.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create builds a validated engine config from a preset.
// Returns an error if the ID is not registered or the config is invalid.
func Create(id string, size int, players []squares.PlayerID) (squares.Config, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return squares.Config{}, fmt.Errorf("registry: unknown mode %q: %w", id, squares.ErrUnknownMode)
	}
	return e.factory(size, players).Normalize()
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

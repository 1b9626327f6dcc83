// Package registry provides the global mini-game catalog. Games register
// themselves in init() functions, so the platform discovers and
// instantiates them without hardcoded dependencies. Each entry carries a
// stable numeric ID alongside its slug; persistence rows use the numeric
// ID while playlists and the CLI address games by slug.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"gauntlet-arcade/internal/core"
)

// Factory creates a fresh instance of a game.
type Factory func() core.Minigame

// Info is the catalog metadata for a registered game.
type Info struct {
	NumericID int64 // Stable across releases; used in persistence rows
	Slug      string
	Title     string
}

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	byNumeric = make(map[int64]string)
)

// Register adds a game factory to the catalog. Typically called from a
// game package's init(). Panics on duplicate slugs or numeric IDs; both
// are programmer errors caught at startup.
func Register(numericID int64, slug string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[slug]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", slug))
	}
	if prev, exists := byNumeric[numericID]; exists {
		panic(fmt.Sprintf("registry: numeric id %d already used by %q", numericID, prev))
	}

	factories[slug] = f
	byNumeric[numericID] = slug

	g := f()
	infos[slug] = Info{NumericID: numericID, Slug: slug, Title: g.Title()}
}

// List returns metadata for all registered games, sorted by slug.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Slug < result[j].Slug
	})
	return result
}

// Create instantiates a new game by slug.
func Create(slug string) (core.Minigame, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[slug]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", slug)
	}
	return f(), nil
}

// Exists reports whether a game with the given slug is registered.
func Exists(slug string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[slug]
	return ok
}

// Lookup returns the catalog metadata for a slug.
func Lookup(slug string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()
	info, ok := infos[slug]
	return info, ok
}

// SlugForID resolves a numeric game ID to its slug. This is the
// id-to-slug table playlist resolution consults first.
func SlugForID(numericID int64) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	slug, ok := byNumeric[numericID]
	return slug, ok
}

// NumericID returns the stable numeric ID for a slug, or 0 if unknown.
func NumericID(slug string) int64 {
	mu.RLock()
	defer mu.RUnlock()
	return infos[slug].NumericID
}

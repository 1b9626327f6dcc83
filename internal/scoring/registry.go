package scoring

import "sync"

// Registry maps game slugs to their normalization strategy. Adding a game
// to the arcade is a registration here, not an edit to a central dispatcher.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	fallback   Strategy
}

// NewRegistry creates an empty registry. The fallback for unregistered
// slugs is plain accuracy (raw/max), which is safe for any game honoring
// the score contract's MaxScore guarantee.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		fallback:   Accuracy{},
	}
}

// Register assigns a strategy to a game slug, replacing any previous one.
func (r *Registry) Register(slug string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[slug] = s
}

// For returns the strategy for a slug, or the fallback when none is
// registered.
func (r *Registry) For(slug string) Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.strategies[slug]; ok {
		return s
	}
	return r.fallback
}

// Normalize runs the slug's strategy and wraps the result in a GameScore.
func (r *Registry) Normalize(slug, title string, in Input, bands []GradeBand) GameScore {
	value, breakdown := r.For(slug).Normalize(in)
	return GameScore{
		GameSlug:        slug,
		GameName:        title,
		RawScore:        in.RawScore,
		NormalizedScore: value,
		Grade:           GradeFor(value, bands),
		Breakdown:       breakdown,
	}
}

package importer

import (
	"fmt"

	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Registry maps importer kinds to their singleton strategy instances
// and supplies the ordered fallback chain for out-of-scope rows.
type Registry struct {
	byKind   map[category.ImporterKind]Strategy
	fallback []Strategy
}

// NewRegistry builds the registry with every known strategy.
func NewRegistry() *Registry {
	position := labeledPairStrategy{kind: category.ImporterPosition}
	pairedProverb := labeledPairStrategy{kind: category.ImporterPairedProverb}

	strategies := []Strategy{
		standardStrategy{},
		idiomStrategy{},
		homonymStrategy{},
		synonymStrategy{},
		pairedIdiomStrategy{},
		position,
		pairedProverb,
		similarProverbStrategy{},
		proverbGroupStrategy{},
	}

	byKind := make(map[category.ImporterKind]Strategy, len(strategies))
	for _, s := range strategies {
		byKind[s.Kind()] = s
	}

	return &Registry{
		byKind: byKind,
		// Tried in order for rows whose page is outside every known
		// scope. Most-specific layouts first; standard is the
		// permissive last resort.
		fallback: []Strategy{
			position,
			synonymStrategy{},
			pairedIdiomStrategy{},
			homonymStrategy{},
			similarProverbStrategy{},
			pairedProverb,
			idiomStrategy{},
			standardStrategy{},
		},
	}
}

// ForCategory returns the single authoritative strategy of a category.
func (r *Registry) ForCategory(cat domain.Category) (Strategy, error) {
	settings, ok := category.SettingsFor(cat)
	if !ok {
		return nil, fmt.Errorf("category %q: no settings", cat)
	}
	s, ok := r.byKind[settings.ImporterKind]
	if !ok {
		return nil, fmt.Errorf("category %q: importer kind %q not registered", cat, settings.ImporterKind)
	}
	return s, nil
}

// FallbackChain returns the ordered strategies tried for rows outside
// every known scope.
func (r *Registry) FallbackChain() []Strategy {
	out := make([]Strategy, len(r.fallback))
	copy(out, r.fallback)
	return out
}

// RegisteredKinds enumerates every registered importer kind, for the
// consistency validation against the category settings table.
func (r *Registry) RegisteredKinds() []category.ImporterKind {
	kinds := make([]category.ImporterKind, 0, len(r.byKind))
	for k := range r.byKind {
		kinds = append(kinds, k)
	}
	return kinds
}

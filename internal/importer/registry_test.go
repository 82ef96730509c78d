package importer

import (
	"testing"

	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

func TestRegistry_ForCategory(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	tests := []struct {
		cat  domain.Category
		kind category.ImporterKind
	}{
		{domain.CategoryProverb, category.ImporterStandard},
		{domain.CategoryIdiom, category.ImporterIdiom},
		{domain.CategoryHomonym, category.ImporterHomonym},
		{domain.CategorySynonym, category.ImporterSynonym},
		{domain.CategoryAntonym, category.ImporterSynonym},
		{domain.CategoryPosition, category.ImporterPosition},
		{domain.CategoryPairedProverb, category.ImporterPairedProverb},
		{domain.CategoryOther, category.ImporterStandard},
	}

	for _, tt := range tests {
		t.Run(string(tt.cat), func(t *testing.T) {
			t.Parallel()
			s, err := r.ForCategory(tt.cat)
			if err != nil {
				t.Fatalf("ForCategory(%s): %v", tt.cat, err)
			}
			if s.Kind() != tt.kind {
				t.Errorf("ForCategory(%s).Kind() = %s, want %s", tt.cat, s.Kind(), tt.kind)
			}
		})
	}
}

func TestRegistry_ForCategory_Unknown(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if _, err := r.ForCategory(domain.Category("存在しない")); err == nil {
		t.Error("expected error for a category without settings")
	}
}

func TestRegistry_FallbackChainOrder(t *testing.T) {
	t.Parallel()

	chain := NewRegistry().FallbackChain()
	if len(chain) == 0 {
		t.Fatal("fallback chain is empty")
	}
	if chain[0].Kind() != category.ImporterPosition {
		t.Errorf("chain starts with %s, want position", chain[0].Kind())
	}
	if chain[len(chain)-1].Kind() != category.ImporterStandard {
		t.Errorf("chain ends with %s, want standard (permissive catch-all last)", chain[len(chain)-1].Kind())
	}
}

func TestRegistry_RegisteredKinds(t *testing.T) {
	t.Parallel()

	kinds := NewRegistry().RegisteredKinds()
	if len(kinds) != 9 {
		t.Fatalf("expected 9 registered kinds, got %d: %v", len(kinds), kinds)
	}
	seen := make(map[category.ImporterKind]bool)
	for _, k := range kinds {
		if seen[k] {
			t.Errorf("kind %s registered twice", k)
		}
		seen[k] = true
	}
}

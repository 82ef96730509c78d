package category

import (
	"testing"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

func allKinds() []ImporterKind {
	return []ImporterKind{
		ImporterStandard,
		ImporterIdiom,
		ImporterHomonym,
		ImporterSynonym,
		ImporterPairedIdiom,
		ImporterPairedProverb,
		ImporterPosition,
		ImporterSimilarProverb,
		ImporterProverbGroup,
	}
}

func TestValidate_DeclaredSettingsAreConsistent(t *testing.T) {
	t.Parallel()

	if err := Validate(allKinds()); err != nil {
		t.Fatalf("the declared settings table must validate: %v", err)
	}
}

func TestValidate_MissingImporterKind(t *testing.T) {
	t.Parallel()

	// Without the standard kind, the proverb settings dangle.
	kinds := allKinds()[1:]
	if err := Validate(kinds); err == nil {
		t.Error("settings referencing an unregistered importer kind must be rejected")
	}
}

func TestSettingsFor_EveryCategory(t *testing.T) {
	t.Parallel()

	for _, cat := range domain.AllCategories {
		s, ok := SettingsFor(cat)
		if !ok {
			t.Errorf("SettingsFor(%s) missing", cat)
			continue
		}
		if s.Category != cat {
			t.Errorf("SettingsFor(%s) declares category %s", cat, s.Category)
		}
		if len(s.List) == 0 {
			t.Errorf("SettingsFor(%s) has an empty list layout", cat)
		}
	}
}

func TestSettingsFor_Unknown(t *testing.T) {
	t.Parallel()

	if _, ok := SettingsFor(domain.Category("未知")); ok {
		t.Error("unknown categories have no settings")
	}
}

func TestSettings_TitleSources(t *testing.T) {
	t.Parallel()

	pairCats := []domain.Category{domain.CategorySynonym, domain.CategoryAntonym}
	for _, cat := range pairCats {
		s, _ := SettingsFor(cat)
		if s.TitleSource != TitleSourceLeftRightPair {
			t.Errorf("%s should use the left/right pair title source", cat)
		}
	}

	s, _ := SettingsFor(domain.CategoryProverb)
	if s.TitleSource != TitleSourceWord {
		t.Error("proverbs should use the word title source")
	}
}

package category

import (
	"fmt"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Validate checks the referential consistency of the category settings
// table against the set of registered importer kinds. It is run once at
// startup; a failure is a static data-authoring bug and fatal.
func Validate(registeredKinds []ImporterKind) error {
	known := make(map[ImporterKind]bool, len(registeredKinds))
	for _, k := range registeredKinds {
		known[k] = true
	}

	for _, cat := range domain.AllCategories {
		s, ok := settingsByCategory[cat]
		if !ok {
			return fmt.Errorf("category %q: no settings declared", cat)
		}
		if s.Category != cat {
			return fmt.Errorf("category %q: settings declare category %q", cat, s.Category)
		}
		if !known[s.ImporterKind] {
			return fmt.Errorf("category %q: importer kind %q is not registered", cat, s.ImporterKind)
		}
		if err := validateSettings(s); err != nil {
			return fmt.Errorf("category %q: %w", cat, err)
		}
	}

	return nil
}

func validateSettings(s Settings) error {
	if len(s.List) == 0 {
		return fmt.Errorf("empty list layout")
	}
	for i, g := range s.List {
		if err := validateGroup(g); err != nil {
			return fmt.Errorf("list group %d: %w", i, err)
		}
	}
	for _, t := range s.Tests {
		if !t.RetryUnlockSide.IsValid() {
			return fmt.Errorf("test %q: invalid retry unlock side", t.Kind)
		}
		if err := validateGroup(t.Question); err != nil {
			return fmt.Errorf("test %q question: %w", t.Kind, err)
		}
		if err := validateGroup(t.Answer); err != nil {
			return fmt.Errorf("test %q answer: %w", t.Kind, err)
		}
	}
	return nil
}

func validateGroup(g FieldGroup) error {
	for i, spec := range g.Specs {
		switch s := spec.(type) {
		case ScalarSpec:
			if !s.Field.IsValid() {
				return fmt.Errorf("spec %d: unknown field %q", i, s.Field)
			}
		case GroupMemberSpec:
			if !s.Mode.IsValid() {
				return fmt.Errorf("spec %d: unknown render mode %q", i, s.Mode)
			}
			if len(s.Fields) == 0 {
				return fmt.Errorf("spec %d: no fields", i)
			}
			for _, f := range s.Fields {
				if !f.IsValid() {
					return fmt.Errorf("spec %d: unknown field %q", i, f)
				}
			}
			for _, f := range s.MaskFields {
				if !f.IsValid() {
					return fmt.Errorf("spec %d: unknown mask field %q", i, f)
				}
			}
			if s.MemberIndex != nil && *s.MemberIndex < 0 {
				return fmt.Errorf("spec %d: negative member index", i)
			}
		default:
			return fmt.Errorf("spec %d: unknown spec type %T", i, spec)
		}
	}
	return nil
}

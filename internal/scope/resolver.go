package scope

import (
	"fmt"
	"sort"

	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Resolver answers scope lookups by id and by page number. Both indices
// are built once; lookups are O(1).
type Resolver struct {
	scopes []domain.Scope
	byID   map[string]domain.Scope
	byPage map[int]domain.Scope
}

// NewResolver validates the declared ranges and builds the resolver.
// A validation failure indicates a static data-authoring bug; callers
// treat it as fatal.
func NewResolver() (*Resolver, error) {
	scopes := BuildScopes()
	if err := ValidateScopes(scopes); err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Scope, len(scopes))
	byPage := make(map[int]domain.Scope)
	for _, s := range scopes {
		byID[s.ID] = s
		for p := s.StartPage; p <= s.EndPage; p++ {
			byPage[p] = s
		}
	}

	return &Resolver{scopes: scopes, byID: byID, byPage: byPage}, nil
}

// All returns every scope, sorted by natural-numeric id order.
func (r *Resolver) All() []domain.Scope {
	out := make([]domain.Scope, len(r.scopes))
	copy(out, r.scopes)
	return out
}

// ByID returns the scope with the given id.
func (r *Resolver) ByID(id string) (domain.Scope, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// ByPage returns the scope whose page range contains the given page.
func (r *Resolver) ByPage(page int) (domain.Scope, bool) {
	s, ok := r.byPage[page]
	return s, ok
}

// BuildScopes flattens the declared ranges into scopes sorted by
// natural-numeric id comparison.
func BuildScopes() []domain.Scope {
	scopes := make([]domain.Scope, 0, len(declaredRanges))
	for _, d := range declaredRanges {
		s := domain.Scope{
			ID:        d.id,
			StartPage: d.start,
			EndPage:   d.end,
			Category:  d.category,
		}
		if d.displayID != "" {
			displayID := d.displayID
			s.DisplayID = &displayID
		}
		scopes = append(scopes, s)
	}

	sort.SliceStable(scopes, func(i, j int) bool {
		return naturalLess(scopes[i].ID, scopes[j].ID)
	})

	return scopes
}

// ValidateScopes checks the static scope invariants:
// every range has start <= end, every category has settings, and no two
// ranges overlap in page numbers, globally rather than per category.
func ValidateScopes(scopes []domain.Scope) error {
	seen := make(map[string]bool, len(scopes))
	for _, s := range scopes {
		if seen[s.ID] {
			return fmt.Errorf("scope %s: duplicate id", s.ID)
		}
		seen[s.ID] = true

		if s.StartPage > s.EndPage {
			return fmt.Errorf("scope %s: start page %d after end page %d", s.ID, s.StartPage, s.EndPage)
		}
		if _, ok := category.SettingsFor(s.Category); !ok {
			return fmt.Errorf("scope %s: category %q has no settings", s.ID, s.Category)
		}
	}

	for i := range scopes {
		for j := i + 1; j < len(scopes); j++ {
			a, b := scopes[i], scopes[j]
			if a.StartPage <= b.EndPage && b.StartPage <= a.EndPage {
				return fmt.Errorf("scopes %s and %s: page ranges overlap", a.ID, b.ID)
			}
		}
	}

	return nil
}

// naturalLess compares two ids segment-wise, comparing digit runs
// numerically so "42A-2" sorts before "42A-10".
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		aDigit, bDigit := isDigit(a[0]), isDigit(b[0])
		if aDigit && bDigit {
			aNum, aRest := takeNumber(a)
			bNum, bRest := takeNumber(b)
			if aNum != bNum {
				return aNum < bNum
			}
			a, b = aRest, bRest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func takeNumber(s string) (int, string) {
	n := 0
	i := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, s[i:]
}

// Package category holds the declarative per-category configuration that
// drives CSV import, list/test rendering, and learning-unit derivation.
// Eleven categories share one generic pipeline; everything
// category-specific lives here, never in the consumers.
package category

import "github.com/kotobanote/kotoba-backend/internal/domain"

// FieldType is the abstract name of one scalar field of a word record.
type FieldType string

const (
	FieldWord            FieldType = "word"
	FieldMeaning         FieldType = "meaning"
	FieldYomigana        FieldType = "yomigana"
	FieldExample         FieldType = "example"
	FieldExampleYomigana FieldType = "example_yomigana"
)

// AllFieldTypes lists every field type; the mapping tables in
// fieldmap.go are total over this set.
var AllFieldTypes = []FieldType{
	FieldWord, FieldMeaning, FieldYomigana, FieldExample, FieldExampleYomigana,
}

func (f FieldType) IsValid() bool {
	for _, known := range AllFieldTypes {
		if f == known {
			return true
		}
	}
	return false
}

// StyleRole is the default presentation role of a rendered field.
type StyleRole string

const (
	RoleWord    StyleRole = "word"
	RoleReading StyleRole = "reading"
	RoleMeaning StyleRole = "meaning"
	RoleExample StyleRole = "example"
)

// RenderMode selects one of the closed set of group-member renderers.
type RenderMode string

const (
	// ModeSynonymPair renders a fixed two-member layout addressed by
	// member index (left/right item of a pair).
	ModeSynonymPair RenderMode = "synonym_pair"
	// ModeHomonymFill substitutes each member's word into the example
	// sentence placeholder; question and answer views differ in whether
	// the blank is filled.
	ModeHomonymFill RenderMode = "homonym_fill"
	// ModeSentenceFill is placeholder substitution against the word's
	// own example sentence.
	ModeSentenceFill RenderMode = "sentence_fill"
	// ModeProverbGroup renders a variable-cardinality member list,
	// optionally sorted by custom label.
	ModeProverbGroup RenderMode = "proverb_group"
	// ModeHomonymList renders a variable-cardinality member list with
	// per-row independent masking.
	ModeHomonymList RenderMode = "homonym_list"
)

func (m RenderMode) IsValid() bool {
	switch m {
	case ModeSynonymPair, ModeHomonymFill, ModeSentenceFill, ModeProverbGroup, ModeHomonymList:
		return true
	}
	return false
}

// ViewMode makes the question/answer distinction of the fill renderers
// explicit instead of inferring it from the field list.
type ViewMode string

const (
	ViewQuestion ViewMode = "question"
	ViewAnswer   ViewMode = "answer"
)

// OrderBy selects the member ordering applied before rendering.
type OrderBy string

const (
	// OrderNone keeps CSV-append order.
	OrderNone OrderBy = ""
	// OrderByCustomLabel sorts members lexicographically by label.
	// Paired-proverb groups are stored in append order but must display
	// grouped by 上/下.
	OrderByCustomLabel OrderBy = "customLabel"
)

// FieldSpec is the closed tagged union describing one renderable piece
// of a word record: either a single scalar field or a grouped-candidate
// block. Consumers dispatch on the concrete type; no other
// implementations exist.
type FieldSpec interface {
	isFieldSpec()
	// IsMasked reports whether the spec renders behind a mask segment.
	IsMasked() bool
}

// ScalarSpec renders one scalar field of the word record.
type ScalarSpec struct {
	Field  FieldType
	Role   StyleRole // zero value falls back to DefaultRole(Field)
	Masked bool
}

func (ScalarSpec) isFieldSpec()     {}
func (s ScalarSpec) IsMasked() bool { return s.Masked }

// GroupMemberSpec renders the word's GroupMembers through one of the
// RenderMode renderers.
type GroupMemberSpec struct {
	Mode   RenderMode
	Fields []FieldType
	// MemberIndex addresses a single member (synonym_pair layouts);
	// nil means the renderer consumes all members.
	MemberIndex *int
	OrderBy     OrderBy
	// MaskFields limits masking to the listed fields; empty means the
	// Masked flag covers every rendered field.
	MaskFields      []FieldType
	Masked          bool
	ShowCustomLabel bool
	// ViewMode is meaningful for the fill modes only.
	ViewMode ViewMode
}

func (GroupMemberSpec) isFieldSpec()     {}
func (g GroupMemberSpec) IsMasked() bool { return g.Masked }

// FieldGroup is one labeled display column: a panel side plus the specs
// rendered inside it.
type FieldGroup struct {
	Label string
	Side  domain.Side
	Specs []FieldSpec
}

// HasMaskedSpec reports whether any spec in the group is masked.
func (g FieldGroup) HasMaskedSpec() bool {
	for _, spec := range g.Specs {
		if spec.IsMasked() {
			return true
		}
	}
	return false
}

// Package render resolves the declarative field specs of a category
// into concrete view models. It is the single place where the five
// group-member render modes are interpreted; consumers (list views,
// test views, editors) never branch on category.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Segment is one rendered piece of text. Masked segments carry the
// mask key that identifies them in session masking state and in
// persisted sheet locks.
type Segment struct {
	Field   category.FieldType
	Role    category.StyleRole
	Text    string
	Label   *string
	Masked  bool
	MaskKey string
}

// Panel is one display column of a word: a labeled side plus its
// rendered segments.
type Panel struct {
	Label    string
	Side     domain.Side
	Segments []Segment
}

// ListRow is the list view model of one word.
type ListRow struct {
	WordID int64
	Panels []Panel
}

// TestCard is the test view model of one word: the question panel and
// the answer panel of one configured test.
type TestCard struct {
	WordID   int64
	Label    string
	Question Panel
	Answer   Panel
}

// SplitByPlaceholder splits a sentence at the blank token into the
// parts before and after it. Returns nil when the sentence carries no
// blank.
func SplitByPlaceholder(s string) []string {
	if !strings.Contains(s, domain.ExamplePlaceholder) {
		return nil
	}
	parts := strings.SplitN(s, domain.ExamplePlaceholder, 2)
	return []string{parts[0], parts[1]}
}

// ResolveListRow renders a word through its category's list layout.
func ResolveListRow(word *domain.Word, settings category.Settings) ListRow {
	row := ListRow{WordID: word.ID}
	for _, group := range settings.List {
		row.Panels = append(row.Panels, resolveGroup(word, group))
	}
	return row
}

// ResolveTestCard renders a word through one configured test layout.
// ok is false when the category declares no test of that kind; callers
// surface that as a not-found state, never a failure.
func ResolveTestCard(word *domain.Word, settings category.Settings, kind category.TestKind) (TestCard, bool) {
	test, ok := settings.TestFor(kind)
	if !ok {
		return TestCard{}, false
	}
	return TestCard{
		WordID:   word.ID,
		Label:    test.Label,
		Question: resolveGroup(word, test.Question),
		Answer:   resolveGroup(word, test.Answer),
	}, true
}

func resolveGroup(word *domain.Word, group category.FieldGroup) Panel {
	panel := Panel{Label: group.Label, Side: group.Side}
	for _, spec := range group.Specs {
		switch s := spec.(type) {
		case category.ScalarSpec:
			panel.Segments = append(panel.Segments, resolveScalar(word, group.Side, s)...)
		case category.GroupMemberSpec:
			handler := modeHandlers[s.Mode]
			if handler == nil {
				continue
			}
			panel.Segments = append(panel.Segments, handler(word, group.Side, s)...)
		}
	}
	return panel
}

// ---------------------------------------------------------------------------
// Scalar rendering
// ---------------------------------------------------------------------------

func resolveScalar(word *domain.Word, side domain.Side, spec category.ScalarSpec) []Segment {
	text := scalarText(word, spec.Field)
	if text == "" {
		return nil
	}
	seg := Segment{
		Field:  spec.Field,
		Role:   category.RoleFor(spec),
		Text:   text,
		Masked: spec.Masked,
	}
	if spec.Masked {
		seg.MaskKey = ScalarMaskKey(word.ID, side, spec.Field)
	}
	return []Segment{seg}
}

func scalarText(word *domain.Word, field category.FieldType) string {
	switch field {
	case category.FieldWord:
		return word.RawWord
	case category.FieldMeaning:
		return word.RawMeaning
	case category.FieldYomigana:
		return word.Yomigana
	case category.FieldExample:
		return strDeref(word.ExampleSentence)
	case category.FieldExampleYomigana:
		return strDeref(word.ExampleSentenceYomigana)
	}
	return ""
}

func memberText(m domain.GroupMember, field category.FieldType) string {
	switch field {
	case category.FieldWord:
		return m.RawWord
	case category.FieldYomigana:
		return m.Yomigana
	case category.FieldExample:
		return strDeref(m.ExampleSentence)
	case category.FieldExampleYomigana:
		return strDeref(m.ExampleSentenceYomigana)
	}
	return ""
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ---------------------------------------------------------------------------
// Mask keys
// ---------------------------------------------------------------------------

// ScalarMaskKey identifies a masked scalar segment of a word.
func ScalarMaskKey(wordID int64, side domain.Side, field category.FieldType) string {
	return fmt.Sprintf("%d:%s:%s", wordID, side, field)
}

// MemberMaskKey identifies a masked segment of one group member.
func MemberMaskKey(wordID int64, side domain.Side, memberIndex int, field category.FieldType) string {
	return fmt.Sprintf("%d:%s:m%d:%s", wordID, side, memberIndex, field)
}

// ---------------------------------------------------------------------------
// Group-member renderers: one handler per mode, dispatched by map.
// ---------------------------------------------------------------------------

type modeHandler func(word *domain.Word, side domain.Side, spec category.GroupMemberSpec) []Segment

var modeHandlers = map[category.RenderMode]modeHandler{
	category.ModeSynonymPair:  renderSynonymPair,
	category.ModeHomonymFill:  renderFill,
	category.ModeSentenceFill: renderFill,
	category.ModeProverbGroup: renderMemberList,
	category.ModeHomonymList:  renderMemberList,
}

// orderedMembers returns the members in render order, remembering each
// member's original index so mask keys stay stable under sorting.
type indexedMember struct {
	index  int
	member domain.GroupMember
}

func orderedMembers(word *domain.Word, orderBy category.OrderBy) []indexedMember {
	out := make([]indexedMember, len(word.GroupMembers))
	for i, m := range word.GroupMembers {
		out[i] = indexedMember{index: i, member: m}
	}
	if orderBy == category.OrderByCustomLabel {
		sort.SliceStable(out, func(i, j int) bool {
			return strDeref(out[i].member.CustomLabel) < strDeref(out[j].member.CustomLabel)
		})
	}
	return out
}

// maskedField reports whether the spec masks the given field.
func maskedField(spec category.GroupMemberSpec, field category.FieldType) bool {
	if !spec.Masked {
		return false
	}
	if len(spec.MaskFields) == 0 {
		return true
	}
	for _, f := range spec.MaskFields {
		if f == field {
			return true
		}
	}
	return false
}

func memberSegments(wordID int64, side domain.Side, im indexedMember, spec category.GroupMemberSpec) []Segment {
	var segs []Segment
	for _, field := range spec.Fields {
		text := memberText(im.member, field)
		if text == "" {
			continue
		}
		seg := Segment{
			Field: field,
			Role:  category.DefaultRole(field),
			Text:  text,
		}
		if spec.ShowCustomLabel {
			seg.Label = im.member.CustomLabel
		}
		if maskedField(spec, field) {
			seg.Masked = true
			seg.MaskKey = MemberMaskKey(wordID, side, im.index, field)
		}
		segs = append(segs, seg)
	}
	return segs
}

// renderSynonymPair renders the single member addressed by MemberIndex.
// A word with too few members renders nothing for that slot; pair
// layouts always address members explicitly.
func renderSynonymPair(word *domain.Word, side domain.Side, spec category.GroupMemberSpec) []Segment {
	if spec.MemberIndex == nil || *spec.MemberIndex >= len(word.GroupMembers) {
		return nil
	}
	i := *spec.MemberIndex
	return memberSegments(word.ID, side, indexedMember{index: i, member: word.GroupMembers[i]}, spec)
}

// renderMemberList renders every member in order; used by both the
// proverb-group and homonym-list modes (per-row masking falls out of
// the per-member mask keys).
func renderMemberList(word *domain.Word, side domain.Side, spec category.GroupMemberSpec) []Segment {
	var segs []Segment
	for _, im := range orderedMembers(word, spec.OrderBy) {
		segs = append(segs, memberSegments(word.ID, side, im, spec)...)
	}
	return segs
}

// renderFill renders example sentences with placeholder substitution.
// Question view keeps the blank; answer view fills it with the
// member's word. Words without members fall back to their own example
// sentence and word text.
func renderFill(word *domain.Word, side domain.Side, spec category.GroupMemberSpec) []Segment {
	if !word.HasGroup() {
		return fillSegments(word.ID, side, -1, strDeref(word.ExampleSentence), word.RawWord, nil, spec)
	}

	var segs []Segment
	for _, im := range orderedMembers(word, spec.OrderBy) {
		var label *string
		if spec.ShowCustomLabel {
			label = im.member.CustomLabel
		}
		segs = append(segs, fillSegments(word.ID, side, im.index, strDeref(im.member.ExampleSentence), im.member.RawWord, label, spec)...)
	}
	return segs
}

func fillSegments(wordID int64, side domain.Side, memberIndex int, sentence, answer string, label *string, spec category.GroupMemberSpec) []Segment {
	if sentence == "" {
		return nil
	}

	text := sentence
	if spec.ViewMode == category.ViewAnswer && answer != "" {
		text = strings.Replace(sentence, domain.ExamplePlaceholder, answer, 1)
	}

	seg := Segment{
		Field: category.FieldExample,
		Role:  category.DefaultRole(category.FieldExample),
		Text:  text,
		Label: label,
	}
	if maskedField(spec, category.FieldExample) {
		seg.Masked = true
		if memberIndex >= 0 {
			seg.MaskKey = MemberMaskKey(wordID, side, memberIndex, category.FieldExample)
		} else {
			seg.MaskKey = ScalarMaskKey(wordID, side, category.FieldExample)
		}
	}
	return []Segment{seg}
}

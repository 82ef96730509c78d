package dashboard

import (
	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// DeriveUnits expands a word into its learning units according to the
// category's title source. Unsaved words derive nothing; their units
// would have no stable keys.
//
// Shapes:
//   - left/right pair with at least two members: one unit whose sides
//     are the first two members, tracked independently
//   - grouped word (non-pair title source): one unit per member, both
//     sides sharing the member's key
//   - otherwise, including a pair word missing its members: one unit
//     keyed by the word itself
func DeriveUnits(w *domain.Word, settings category.Settings) []domain.LearningUnit {
	if !w.IsSaved() {
		return nil
	}

	pair := settings.TitleSource == category.TitleSourceLeftRightPair

	if pair && len(w.GroupMembers) >= 2 {
		return []domain.LearningUnit{{
			ID:           domain.PairUnitID(w.ID),
			Title:        pairTitle(w, settings),
			WordID:       w.ID,
			LeftUnitKey:  domain.MemberUnitKey(w.ID, 0),
			RightUnitKey: domain.MemberUnitKey(w.ID, 1),
		}}
	}

	if !pair && w.HasGroup() {
		units := make([]domain.LearningUnit, len(w.GroupMembers))
		for i, m := range w.GroupMembers {
			key := domain.MemberUnitKey(w.ID, i)
			units[i] = domain.LearningUnit{
				ID:           domain.MemberUnitID(w.ID, i),
				Title:        memberTitle(m, w, settings),
				WordID:       w.ID,
				LeftUnitKey:  key,
				RightUnitKey: key,
			}
		}
		return units
	}

	title := wordTitle(w, settings)
	if w.HasGroup() {
		title = memberTitle(w.GroupMembers[0], w, settings)
	}
	key := domain.WordUnitKey(w.ID)
	return []domain.LearningUnit{{
		ID:           key,
		Title:        title,
		WordID:       w.ID,
		LeftUnitKey:  key,
		RightUnitKey: key,
	}}
}

// wordTitle falls back from the word text to the question text of the
// category's tests, then to the placeholder title.
func wordTitle(w *domain.Word, settings category.Settings) string {
	if w.RawWord != "" {
		return w.RawWord
	}
	if q := questionText(w, settings); q != "" {
		return q
	}
	return domain.UnitTitleFallback
}

// memberTitle prefers the member's own text, then the word-level chain.
func memberTitle(m domain.GroupMember, w *domain.Word, settings category.Settings) string {
	if m.RawWord != "" {
		return m.RawWord
	}
	return wordTitle(w, settings)
}

// pairTitle joins both member titles with a slash; a pair reads as one
// row ("不足 / 欠乏").
func pairTitle(w *domain.Word, settings category.Settings) string {
	return memberTitle(w.GroupMembers[0], w, settings) + " / " +
		memberTitle(w.GroupMembers[1], w, settings)
}

// questionText returns the first non-empty scalar field shown on the
// question side of any configured test.
func questionText(w *domain.Word, settings category.Settings) string {
	for _, t := range settings.Tests {
		for _, spec := range t.Question.Specs {
			s, ok := spec.(category.ScalarSpec)
			if !ok {
				continue
			}
			if v := fieldText(w, s.Field); v != "" {
				return v
			}
		}
	}
	return ""
}

func fieldText(w *domain.Word, f category.FieldType) string {
	switch f {
	case category.FieldWord:
		return w.RawWord
	case category.FieldYomigana:
		return w.Yomigana
	case category.FieldMeaning:
		return w.RawMeaning
	case category.FieldExample:
		if w.ExampleSentence != nil {
			return *w.ExampleSentence
		}
	case category.FieldExampleYomigana:
		if w.ExampleSentenceYomigana != nil {
			return *w.ExampleSentenceYomigana
		}
	}
	return ""
}

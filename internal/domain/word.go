package domain

import "time"

// ExamplePlaceholder is the blank token embedded in example sentences;
// fill-style renderers substitute the answer word into it.
const ExamplePlaceholder = "＿＿"

// GroupMember is one candidate inside a grouped Word: one homonym
// spelling, one side of a synonym pair, one proverb of a group.
type GroupMember struct {
	RawWord                 string
	Yomigana                string
	CustomLabel             *string
	ExampleSentence         *string
	ExampleSentenceYomigana *string
}

// Word is the canonical learning record. One Word represents either a
// single item or a group of related candidates (GroupMembers).
//
// Identity: ID is assigned by the store on insert. (Page, NumberInPage)
// is the natural dedup key during import: physical CSV rows sharing it
// are merged into one Word's GroupMembers.
type Word struct {
	ID           int64
	Page         int
	NumberInPage int
	Category     Category

	RawWord    string
	Yomigana   string
	RawMeaning string

	ExampleSentence         *string
	ExampleSentenceYomigana *string

	// GroupMembers, when non-nil, has length >= 1 and every member's
	// shape is category-consistent (homonym categories never carry
	// CustomLabel, paired categories always do).
	GroupMembers []GroupMember

	IsLearnedCategory bool
	IsLearnedMeaning  bool
	LastStudied       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSaved reports whether the word has a persisted identity. Transient
// records (ID == 0) never appear in dashboards or progress accounting.
func (w *Word) IsSaved() bool { return w.ID > 0 }

// HasGroup reports whether the word carries grouped candidates.
func (w *Word) HasGroup() bool { return len(w.GroupMembers) > 0 }

// Learned returns the learned flag for the given side.
func (w *Word) Learned(side Side) bool {
	if side == SideLeft {
		return w.IsLearnedCategory
	}
	return w.IsLearnedMeaning
}

// SetLearned sets the learned flag for the given side.
func (w *Word) SetLearned(side Side, value bool) {
	if side == SideLeft {
		w.IsLearnedCategory = value
		return
	}
	w.IsLearnedMeaning = value
}

// Validate checks the structural invariants of a word record.
func (w *Word) Validate() error {
	var errs []FieldError
	if w.Page <= 0 {
		errs = append(errs, FieldError{Field: "page", Message: "must be positive"})
	}
	if w.NumberInPage <= 0 {
		errs = append(errs, FieldError{Field: "numberInPage", Message: "must be positive"})
	}
	if !w.Category.IsValid() {
		errs = append(errs, FieldError{Field: "category", Message: "unknown category"})
	}
	if w.RawWord == "" && !w.HasGroup() {
		errs = append(errs, FieldError{Field: "rawWord", Message: "required for ungrouped words"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

package domain

// Category identifies one of the source material's word-list categories.
// The string values match the category labels used in the source material
// itself; they appear verbatim in CSV files and in the database.
type Category string

const (
	CategoryIdiom          Category = "慣用句"
	CategoryClassicalIdiom Category = "故事成語"
	CategoryProverb        Category = "ことわざ"
	CategorySimilarProverb Category = "似たことわざ"
	CategoryPairedProverb  Category = "対のことわざ"
	CategoryProverbGroup   Category = "ことわざグループ"
	CategoryHomonym        Category = "同音異義語"
	CategoryHomograph      Category = "同訓異字"
	CategorySynonym        Category = "類義語"
	CategoryAntonym        Category = "対義語"
	CategoryPosition       Category = "上下語"

	// CategoryOther is assigned to imported words whose page falls outside
	// every known scope.
	CategoryOther Category = "その他"
)

// AllCategories lists every category in declaration order.
// CategoryOther is included: it owns no scopes but still needs settings
// so out-of-scope imports stay renderable.
var AllCategories = []Category{
	CategoryIdiom,
	CategoryClassicalIdiom,
	CategoryProverb,
	CategorySimilarProverb,
	CategoryPairedProverb,
	CategoryProverbGroup,
	CategoryHomonym,
	CategoryHomograph,
	CategorySynonym,
	CategoryAntonym,
	CategoryPosition,
	CategoryOther,
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Side is one of the two independently tracked learning dimensions of a
// word: category-test vs meaning-test mastery in single-item categories,
// or left-item vs right-item mastery in paired categories.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

func (s Side) String() string { return string(s) }

func (s Side) IsValid() bool {
	return s == SideLeft || s == SideRight
}

// LearningEvent is the kind of study interaction recorded against a
// learning unit.
type LearningEvent string

const (
	EventReveal      LearningEvent = "reveal"
	EventTestCorrect LearningEvent = "test_correct"
	EventTestWrong   LearningEvent = "test_wrong"
	EventTestForgot  LearningEvent = "test_forgot"
)

func (e LearningEvent) String() string { return string(e) }

func (e LearningEvent) IsValid() bool {
	switch e {
	case EventReveal, EventTestCorrect, EventTestWrong, EventTestForgot:
		return true
	}
	return false
}

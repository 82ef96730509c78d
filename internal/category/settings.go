package category

import "github.com/kotobanote/kotoba-backend/internal/domain"

// ImporterKind names the CSV import strategy that owns a category.
// The importer registry resolves kinds to strategy instances; the
// referential check in validate.go keeps both sides consistent.
type ImporterKind string

const (
	ImporterStandard       ImporterKind = "standard"
	ImporterIdiom          ImporterKind = "idiom"
	ImporterHomonym        ImporterKind = "homonym"
	ImporterSynonym        ImporterKind = "synonym"
	ImporterPairedIdiom    ImporterKind = "paired_idiom"
	ImporterPairedProverb  ImporterKind = "paired_proverb"
	ImporterPosition       ImporterKind = "position"
	ImporterSimilarProverb ImporterKind = "similar_proverb"
	ImporterProverbGroup   ImporterKind = "proverb_group"
)

// TitleSource selects how a learning unit's title and keys are derived
// from a word's shape.
type TitleSource string

const (
	// TitleSourceWord titles units by the word (or member) text; grouped
	// words emit one unit per member.
	TitleSourceWord TitleSource = "word"
	// TitleSourceLeftRightPair emits one unit per word with the first
	// two members as independently tracked left/right sides.
	TitleSourceLeftRightPair TitleSource = "left_right_pair"
)

// TestKind distinguishes the two test directions of a category.
type TestKind string

const (
	TestCategory TestKind = "category"
	TestMeaning  TestKind = "meaning"
)

// TestSettings describes one test layout: what the question shows, what
// the answer reveals, and which side a retry unlocks.
type TestSettings struct {
	Kind            TestKind
	Label           string
	Question        FieldGroup
	Answer          FieldGroup
	RetryUnlockSide domain.Side
}

// Settings is the immutable per-category configuration consumed by the
// import pipeline, the render layer, and the dashboard. Instances are
// built by the factory functions below and validated once at startup.
type Settings struct {
	Category     domain.Category
	ImporterKind ImporterKind
	TitleSource  TitleSource

	// HeaderLeft/HeaderRight are the list view's panel headers.
	HeaderLeft  string
	HeaderRight string

	// List is the list view layout, one group per panel.
	List []FieldGroup

	Tests []TestSettings
}

// TestFor returns the test settings of the given kind.
func (s Settings) TestFor(kind TestKind) (TestSettings, bool) {
	for _, t := range s.Tests {
		if t.Kind == kind {
			return t, true
		}
	}
	return TestSettings{}, false
}

// ---------------------------------------------------------------------------
// Factories, one per structural family, parameterized by labels.
// ---------------------------------------------------------------------------

// idiomSettings covers single idioms carrying an example sentence with a
// placeholder blank (慣用句).
func idiomSettings(cat domain.Category, headerLeft, headerRight string) Settings {
	return Settings{
		Category:     cat,
		ImporterKind: ImporterIdiom,
		TitleSource:  TitleSourceWord,
		HeaderLeft:   headerLeft,
		HeaderRight:  headerRight,
		List: []FieldGroup{
			{
				Label: headerLeft,
				Side:  domain.SideLeft,
				Specs: []FieldSpec{
					ScalarSpec{Field: FieldWord, Masked: true},
					ScalarSpec{Field: FieldYomigana, Masked: true},
				},
			},
			{
				Label: headerRight,
				Side:  domain.SideRight,
				Specs: []FieldSpec{
					ScalarSpec{Field: FieldMeaning, Masked: true},
					ScalarSpec{Field: FieldExample},
				},
			},
		},
		Tests: []TestSettings{
			{
				Kind:            TestCategory,
				Label:           headerLeft + "テスト",
				Question:        FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{ScalarSpec{Field: FieldExample}, ScalarSpec{Field: FieldMeaning}}},
				Answer:          FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{ScalarSpec{Field: FieldWord}, ScalarSpec{Field: FieldYomigana}}},
				RetryUnlockSide: domain.SideLeft,
			},
			{
				Kind:            TestMeaning,
				Label:           headerRight + "テスト",
				Question:        FieldGroup{Side: domain.SideRight, Specs: []FieldSpec{ScalarSpec{Field: FieldWord}, ScalarSpec{Field: FieldYomigana}}},
				Answer:          FieldGroup{Side: domain.SideRight, Specs: []FieldSpec{ScalarSpec{Field: FieldMeaning}}},
				RetryUnlockSide: domain.SideRight,
			},
		},
	}
}

// proverbSettings covers plain five-column records (ことわざ and the
// fallback category).
func proverbSettings(cat domain.Category, kind ImporterKind, headerLeft, headerRight string) Settings {
	return Settings{
		Category:     cat,
		ImporterKind: kind,
		TitleSource:  TitleSourceWord,
		HeaderLeft:   headerLeft,
		HeaderRight:  headerRight,
		List: []FieldGroup{
			{
				Label: headerLeft,
				Side:  domain.SideLeft,
				Specs: []FieldSpec{
					ScalarSpec{Field: FieldWord, Masked: true},
					ScalarSpec{Field: FieldYomigana, Masked: true},
				},
			},
			{
				Label: headerRight,
				Side:  domain.SideRight,
				Specs: []FieldSpec{
					ScalarSpec{Field: FieldMeaning, Masked: true},
				},
			},
		},
		Tests: []TestSettings{
			{
				Kind:            TestCategory,
				Label:           headerLeft + "テスト",
				Question:        FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{ScalarSpec{Field: FieldMeaning}}},
				Answer:          FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{ScalarSpec{Field: FieldWord}, ScalarSpec{Field: FieldYomigana}}},
				RetryUnlockSide: domain.SideLeft,
			},
			{
				Kind:            TestMeaning,
				Label:           headerRight + "テスト",
				Question:        FieldGroup{Side: domain.SideRight, Specs: []FieldSpec{ScalarSpec{Field: FieldWord}, ScalarSpec{Field: FieldYomigana}}},
				Answer:          FieldGroup{Side: domain.SideRight, Specs: []FieldSpec{ScalarSpec{Field: FieldMeaning}}},
				RetryUnlockSide: domain.SideRight,
			},
		},
	}
}

// synonymPairSettings covers paired left/right items stored as two group
// members of one word (類義語, 対義語). Progress tracks each side of the
// pair independently.
func synonymPairSettings(cat domain.Category, headerLeft, headerRight string) Settings {
	idx := func(i int) *int { return &i }

	return Settings{
		Category:     cat,
		ImporterKind: ImporterSynonym,
		TitleSource:  TitleSourceLeftRightPair,
		HeaderLeft:   headerLeft,
		HeaderRight:  headerRight,
		List: []FieldGroup{
			{
				Label: headerLeft,
				Side:  domain.SideLeft,
				Specs: []FieldSpec{
					GroupMemberSpec{
						Mode:        ModeSynonymPair,
						Fields:      []FieldType{FieldWord, FieldYomigana},
						MemberIndex: idx(0),
						Masked:      true,
					},
				},
			},
			{
				Label: headerRight,
				Side:  domain.SideRight,
				Specs: []FieldSpec{
					GroupMemberSpec{
						Mode:        ModeSynonymPair,
						Fields:      []FieldType{FieldWord, FieldYomigana},
						MemberIndex: idx(1),
						Masked:      true,
					},
				},
			},
		},
		Tests: []TestSettings{
			{
				Kind:  TestCategory,
				Label: headerLeft + "テスト",
				Question: FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{
					GroupMemberSpec{Mode: ModeSynonymPair, Fields: []FieldType{FieldWord, FieldYomigana}, MemberIndex: idx(1)},
				}},
				Answer: FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{
					GroupMemberSpec{Mode: ModeSynonymPair, Fields: []FieldType{FieldWord, FieldYomigana}, MemberIndex: idx(0)},
				}},
				RetryUnlockSide: domain.SideLeft,
			},
			{
				Kind:  TestMeaning,
				Label: headerRight + "テスト",
				Question: FieldGroup{Side: domain.SideRight, Specs: []FieldSpec{
					GroupMemberSpec{Mode: ModeSynonymPair, Fields: []FieldType{FieldWord, FieldYomigana}, MemberIndex: idx(0)},
				}},
				Answer: FieldGroup{Side: domain.SideRight, Specs: []FieldSpec{
					GroupMemberSpec{Mode: ModeSynonymPair, Fields: []FieldType{FieldWord, FieldYomigana}, MemberIndex: idx(1)},
				}},
				RetryUnlockSide: domain.SideRight,
			},
		},
	}
}

// homonymSettings covers same-reading candidate groups (同音異義語,
// 同訓異字): a shared reading on the left, candidate spellings with
// fill-in example sentences on the right.
func homonymSettings(cat domain.Category, headerLeft, headerRight string) Settings {
	return Settings{
		Category:     cat,
		ImporterKind: ImporterHomonym,
		TitleSource:  TitleSourceWord,
		HeaderLeft:   headerLeft,
		HeaderRight:  headerRight,
		List: []FieldGroup{
			{
				Label: headerLeft,
				Side:  domain.SideLeft,
				Specs: []FieldSpec{
					ScalarSpec{Field: FieldYomigana, Role: RoleWord},
					GroupMemberSpec{
						Mode:       ModeHomonymList,
						Fields:     []FieldType{FieldExample, FieldExampleYomigana},
						MaskFields: []FieldType{FieldExample},
						Masked:     true,
					},
				},
			},
			{
				Label: headerRight,
				Side:  domain.SideRight,
				Specs: []FieldSpec{
					GroupMemberSpec{
						Mode:       ModeHomonymList,
						Fields:     []FieldType{FieldWord, FieldExample},
						MaskFields: []FieldType{FieldWord},
						Masked:     true,
					},
				},
			},
		},
		Tests: []TestSettings{
			{
				Kind:  TestCategory,
				Label: headerLeft + "テスト",
				Question: FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{
					GroupMemberSpec{Mode: ModeHomonymFill, Fields: []FieldType{FieldExample}, ViewMode: ViewQuestion},
				}},
				Answer: FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{
					GroupMemberSpec{Mode: ModeHomonymFill, Fields: []FieldType{FieldWord, FieldExample}, ViewMode: ViewAnswer},
				}},
				RetryUnlockSide: domain.SideLeft,
			},
		},
	}
}

// pairedSentenceSettings covers records whose answer lives inside a
// companion sentence (故事成語).
func pairedSentenceSettings(cat domain.Category, kind ImporterKind, headerLeft, headerRight string, showLabel bool) Settings {
	return Settings{
		Category:     cat,
		ImporterKind: kind,
		TitleSource:  TitleSourceWord,
		HeaderLeft:   headerLeft,
		HeaderRight:  headerRight,
		List: []FieldGroup{
			{
				Label: headerLeft,
				Side:  domain.SideLeft,
				Specs: []FieldSpec{
					ScalarSpec{Field: FieldWord, Masked: true},
					ScalarSpec{Field: FieldYomigana, Masked: true},
				},
			},
			{
				Label: headerRight,
				Side:  domain.SideRight,
				Specs: []FieldSpec{
					GroupMemberSpec{
						Mode:            ModeSentenceFill,
						Fields:          []FieldType{FieldExample, FieldExampleYomigana},
						Masked:          true,
						ShowCustomLabel: showLabel,
					},
				},
			},
		},
		Tests: []TestSettings{
			{
				Kind:  TestCategory,
				Label: headerLeft + "テスト",
				Question: FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{
					GroupMemberSpec{Mode: ModeSentenceFill, Fields: []FieldType{FieldExample}, ViewMode: ViewQuestion, ShowCustomLabel: showLabel},
				}},
				Answer: FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{
					ScalarSpec{Field: FieldWord},
					ScalarSpec{Field: FieldYomigana},
				}},
				RetryUnlockSide: domain.SideLeft,
			},
		},
	}
}

// proverbGroupSettings covers variable-cardinality proverb groups
// (似たことわざ, 対のことわざ, ことわざグループ). orderBy pulls labeled
// members into 上/下 display order regardless of CSV order.
func proverbGroupSettings(cat domain.Category, kind ImporterKind, headerLeft, headerRight string, orderBy OrderBy, showLabel bool) Settings {
	return Settings{
		Category:     cat,
		ImporterKind: kind,
		TitleSource:  TitleSourceWord,
		HeaderLeft:   headerLeft,
		HeaderRight:  headerRight,
		List: []FieldGroup{
			{
				Label: headerLeft,
				Side:  domain.SideLeft,
				Specs: []FieldSpec{
					GroupMemberSpec{
						Mode:            ModeProverbGroup,
						Fields:          []FieldType{FieldWord, FieldYomigana},
						OrderBy:         orderBy,
						Masked:          true,
						ShowCustomLabel: showLabel,
					},
				},
			},
			{
				Label: headerRight,
				Side:  domain.SideRight,
				Specs: []FieldSpec{
					ScalarSpec{Field: FieldMeaning, Masked: true},
				},
			},
		},
		Tests: []TestSettings{
			{
				Kind:     TestCategory,
				Label:    headerLeft + "テスト",
				Question: FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{ScalarSpec{Field: FieldMeaning}}},
				Answer: FieldGroup{Side: domain.SideLeft, Specs: []FieldSpec{
					GroupMemberSpec{Mode: ModeProverbGroup, Fields: []FieldType{FieldWord, FieldYomigana}, OrderBy: orderBy, ShowCustomLabel: showLabel},
				}},
				RetryUnlockSide: domain.SideLeft,
			},
		},
	}
}

// ---------------------------------------------------------------------------
// The registry
// ---------------------------------------------------------------------------

// settingsByCategory is built once at package load. Mutating it after
// startup is a bug; Validate() in validate.go checks its consistency.
var settingsByCategory = map[domain.Category]Settings{
	domain.CategoryIdiom:          idiomSettings(domain.CategoryIdiom, "慣用句", "意味"),
	domain.CategoryClassicalIdiom: pairedSentenceSettings(domain.CategoryClassicalIdiom, ImporterPairedIdiom, "故事成語", "用例", false),
	domain.CategoryProverb:        proverbSettings(domain.CategoryProverb, ImporterStandard, "ことわざ", "意味"),
	domain.CategorySimilarProverb: proverbGroupSettings(domain.CategorySimilarProverb, ImporterSimilarProverb, "似たことわざ", "意味", OrderNone, false),
	domain.CategoryPairedProverb:  proverbGroupSettings(domain.CategoryPairedProverb, ImporterPairedProverb, "対のことわざ", "意味", OrderByCustomLabel, true),
	domain.CategoryProverbGroup:   proverbGroupSettings(domain.CategoryProverbGroup, ImporterProverbGroup, "ことわざ", "意味", OrderNone, true),
	domain.CategoryHomonym:        homonymSettings(domain.CategoryHomonym, "読み", "漢字"),
	domain.CategoryHomograph:      homonymSettings(domain.CategoryHomograph, "読み", "漢字"),
	domain.CategorySynonym:        synonymPairSettings(domain.CategorySynonym, "類義語(上)", "類義語(下)"),
	domain.CategoryAntonym:        synonymPairSettings(domain.CategoryAntonym, "対義語(上)", "対義語(下)"),
	domain.CategoryPosition:       proverbGroupSettings(domain.CategoryPosition, ImporterPosition, "上下語", "意味", OrderByCustomLabel, true),
	domain.CategoryOther:          proverbSettings(domain.CategoryOther, ImporterStandard, "ことば", "意味"),
}

// SettingsFor returns the settings of a category.
func SettingsFor(cat domain.Category) (Settings, bool) {
	s, ok := settingsByCategory[cat]
	return s, ok
}

// All returns the full category → settings table.
func All() map[domain.Category]Settings {
	return settingsByCategory
}

// Package scope holds the static registry mapping categories and
// contiguous page ranges of the source material to named scopes, plus
// the lookup indices built from it at startup.
package scope

import "github.com/kotobanote/kotoba-backend/internal/domain"

// rangeDecl declares one scope: a contiguous, category-homogeneous page
// range. displayID, when set, merges the scope with others sharing the
// same displayID into one schedulable lesson slot.
type rangeDecl struct {
	id        string
	displayID string
	start     int
	end       int
	category  domain.Category
}

// declaredRanges is the authoritative scope table. Page ranges must not
// overlap anywhere in the table, across categories included; Validate
// enforces that at startup.
var declaredRanges = []rangeDecl{
	{id: "40A-01", start: 10, end: 25, category: domain.CategoryIdiom},
	{id: "40A-02", start: 26, end: 41, category: domain.CategoryIdiom},
	{id: "40B-01", start: 42, end: 55, category: domain.CategoryClassicalIdiom},

	{id: "41A-01", start: 60, end: 75, category: domain.CategoryProverb},
	{id: "41A-02", start: 76, end: 91, category: domain.CategoryProverb},

	// 似たことわざ and 対のことわざ split one lesson across two word
	// categories; the shared displayID keeps them as a single
	// schedulable slot.
	{id: "42A-01", displayID: "42A-01", start: 96, end: 103, category: domain.CategorySimilarProverb},
	{id: "42A-01P", displayID: "42A-01", start: 104, end: 111, category: domain.CategoryPairedProverb},
	{id: "42A-02", displayID: "42A-02", start: 112, end: 119, category: domain.CategorySimilarProverb},
	{id: "42A-02P", displayID: "42A-02", start: 120, end: 127, category: domain.CategoryPairedProverb},
	{id: "42B-01", start: 128, end: 139, category: domain.CategoryProverbGroup},

	{id: "43A-01", start: 144, end: 159, category: domain.CategoryHomonym},
	{id: "43A-02", start: 160, end: 175, category: domain.CategoryHomonym},
	{id: "43B-01", start: 176, end: 191, category: domain.CategoryHomograph},

	{id: "44A-01", start: 196, end: 211, category: domain.CategorySynonym},
	{id: "44A-02", start: 212, end: 227, category: domain.CategorySynonym},
	{id: "44B-01", start: 228, end: 243, category: domain.CategoryAntonym},

	{id: "45A-01", start: 248, end: 259, category: domain.CategoryPosition},
}

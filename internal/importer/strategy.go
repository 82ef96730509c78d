package importer

import (
	"strconv"
	"strings"

	"github.com/kotobanote/kotoba-backend/internal/category"
)

// Logical field names used in column mappings and import reports.
const (
	fieldPage         = "page"
	fieldNumberInPage = "numberInPage"
	fieldWord         = "word"
	fieldYomigana     = "yomigana"
	fieldMeaning      = "meaning"
	fieldExample      = "exampleSentence"
	fieldExampleYomi  = "exampleSentenceYomigana"
	fieldCustomLabel  = "customLabel"
)

// ParsedRow is one logical record extracted from a physical CSV row.
// Rows sharing (Page, NumberInPage) are later folded into one word's
// group members.
type ParsedRow struct {
	Page         int
	NumberInPage int

	RawWord    string
	Yomigana   string
	RawMeaning string

	ExampleSentence         *string
	ExampleSentenceYomigana *string
	CustomLabel             *string
}

// Strategy parses one fixed CSV column layout.
//
// CanHandle is a cheap structural test used only in the fallback chain;
// when a row's page resolves to a scope, the scope's category dictates
// the strategy unconditionally. ParseRow returns the logical rows the
// physical row yields (nil when a required field is missing; the row
// is then skipped). ColumnMapping describes the layout for import
// reports.
type Strategy interface {
	Kind() category.ImporterKind
	CanHandle(row []string) bool
	ParseRow(row []string) []ParsedRow
	ColumnMapping() map[int]string
}

// pageAndNumber extracts the (page, numberInPage) prefix shared by
// every layout. ok is false when either column fails to parse.
func pageAndNumber(row []string) (page, number int, ok bool) {
	if len(row) < 2 {
		return 0, 0, false
	}
	page, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return 0, 0, false
	}
	number, err = strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return 0, 0, false
	}
	return page, number, true
}

// cell returns the trimmed cell at index i, or "" when out of range.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// optional returns a pointer to the trimmed cell, or nil when empty.
func optional(row []string, i int) *string {
	s := cell(row, i)
	if s == "" {
		return nil
	}
	return &s
}

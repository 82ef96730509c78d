package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Report summarizes one import run.
type Report struct {
	Category string
	Count    int
	// Mapping is a human-readable comma-joined list of
	// "<CSV header text>><logical field name>" pairs for the strategy
	// that was actually used.
	Mapping string
}

// ParseResult is the outcome of parsing one CSV file: the finalized
// words (unsaved, ids unassigned), the distinct pages they touch, and
// the report.
type ParseResult struct {
	Words         []domain.Word
	AffectedPages []int
	Report        Report
}

// scopeResolver is the page → scope lookup the pipeline needs.
type scopeResolver interface {
	ByPage(page int) (domain.Scope, bool)
}

// Pipeline turns a raw CSV stream into word records. Strategy selection
// is scope-driven: a row whose page resolves to a scope is parsed by
// that scope's category strategy unconditionally; out-of-scope rows go
// through the fallback chain.
type Pipeline struct {
	scopes   scopeResolver
	registry *Registry
}

// NewPipeline creates a Pipeline.
func NewPipeline(scopes scopeResolver, registry *Registry) *Pipeline {
	return &Pipeline{scopes: scopes, registry: registry}
}

// groupKey is the natural dedup key of logical rows.
type groupKey struct {
	page   int
	number int
}

// accumulator collects the logical rows of one (page, numberInPage)
// before finalization.
type accumulator struct {
	rows []ParsedRow
}

// Parse reads the whole CSV. Row 0 is always a header and skipped for
// data; its cell text is echoed into the report mapping. A row that
// fails every candidate strategy is skipped silently. An empty CSV
// parses successfully with zero words. A malformed CSV stream is an
// error and rejects the whole import.
func (p *Pipeline) Parse(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &ParseResult{Words: []domain.Word{}, AffectedPages: []int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	// Ordered accumulation: groups finalize in first-seen order.
	order := make([]groupKey, 0)
	groups := make(map[groupKey]*accumulator)

	var reportStrategy Strategy
	var reportCategory domain.Category

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		parsed, strategy := p.parseRow(row)
		if len(parsed) == 0 {
			continue
		}

		if reportStrategy == nil {
			reportStrategy = strategy
			if s, ok := p.scopes.ByPage(parsed[0].Page); ok {
				reportCategory = s.Category
			} else {
				reportCategory = domain.CategoryOther
			}
		}

		for _, pr := range parsed {
			key := groupKey{page: pr.Page, number: pr.NumberInPage}
			acc, ok := groups[key]
			if !ok {
				acc = &accumulator{}
				groups[key] = acc
				order = append(order, key)
			}
			acc.rows = append(acc.rows, pr)
		}
	}

	words := make([]domain.Word, 0, len(order))
	pageSet := make(map[int]bool)
	for _, key := range order {
		word := finalize(groups[key].rows)
		if s, ok := p.scopes.ByPage(word.Page); ok {
			word.Category = s.Category
		} else {
			word.Category = domain.CategoryOther
		}
		words = append(words, word)
		pageSet[word.Page] = true
	}

	pages := make([]int, 0, len(pageSet))
	for page := range pageSet {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	report := Report{Count: len(words)}
	if reportStrategy != nil {
		report.Category = reportCategory.String()
		report.Mapping = formatMapping(header, reportStrategy.ColumnMapping())
	}

	return &ParseResult{Words: words, AffectedPages: pages, Report: report}, nil
}

// parseRow selects and runs the strategy for one physical row.
// In-scope pages use the scope category's strategy with no CanHandle
// trial; out-of-scope pages walk the fallback chain.
func (p *Pipeline) parseRow(row []string) ([]ParsedRow, Strategy) {
	if page, _, ok := pageAndNumber(row); ok {
		if s, found := p.scopes.ByPage(page); found {
			strategy, err := p.registry.ForCategory(s.Category)
			if err != nil {
				return nil, nil
			}
			return strategy.ParseRow(row), strategy
		}
	}

	for _, strategy := range p.registry.FallbackChain() {
		if !strategy.CanHandle(row) {
			continue
		}
		if parsed := strategy.ParseRow(row); len(parsed) > 0 {
			return parsed, strategy
		}
		// CanHandle matched but required fields were missing: the row
		// is dropped, not retried with a laxer strategy.
		return nil, nil
	}

	return nil, nil
}

// finalize folds the accumulated logical rows of one (page, number)
// into a word. A single unlabeled row stays a plain word; the moment a
// second row (or a label) appears, every row becomes a group member
// with the first row doubling as the base record.
func finalize(rows []ParsedRow) domain.Word {
	base := rows[0]
	word := domain.Word{
		Page:                    base.Page,
		NumberInPage:            base.NumberInPage,
		RawWord:                 base.RawWord,
		Yomigana:                base.Yomigana,
		RawMeaning:              base.RawMeaning,
		ExampleSentence:         base.ExampleSentence,
		ExampleSentenceYomigana: base.ExampleSentenceYomigana,
	}

	if len(rows) == 1 && base.CustomLabel == nil {
		return word
	}

	members := make([]domain.GroupMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, domain.GroupMember{
			RawWord:                 row.RawWord,
			Yomigana:                row.Yomigana,
			CustomLabel:             row.CustomLabel,
			ExampleSentence:         row.ExampleSentence,
			ExampleSentenceYomigana: row.ExampleSentenceYomigana,
		})
	}
	word.GroupMembers = members

	return word
}

// formatMapping renders "<header text>><field>" pairs in column order.
func formatMapping(header []string, mapping map[int]string) string {
	indices := make([]int, 0, len(mapping))
	for i := range mapping {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	pairs := make([]string, 0, len(indices))
	for _, i := range indices {
		headerText := ""
		if i < len(header) {
			headerText = strings.TrimSpace(header[i])
		}
		pairs = append(pairs, fmt.Sprintf("%s>%s", headerText, mapping[i]))
	}
	return strings.Join(pairs, ", ")
}

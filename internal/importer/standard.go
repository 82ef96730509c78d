package importer

import "github.com/kotobanote/kotoba-backend/internal/category"

// standardStrategy parses the default five-column layout:
// page, no, word, yomigana, meaning.
//
// Its CanHandle is deliberately permissive (any row with at least five
// columns). It is the last entry of the fallback chain and acts as a
// best-effort catch-all.
type standardStrategy struct{}

func (standardStrategy) Kind() category.ImporterKind { return category.ImporterStandard }

func (standardStrategy) CanHandle(row []string) bool {
	return len(row) >= 5
}

func (standardStrategy) ParseRow(row []string) []ParsedRow {
	page, number, ok := pageAndNumber(row)
	if !ok {
		return nil
	}
	word := cell(row, 2)
	meaning := cell(row, 4)
	if word == "" || meaning == "" {
		return nil
	}
	return []ParsedRow{{
		Page:         page,
		NumberInPage: number,
		RawWord:      word,
		Yomigana:     cell(row, 3),
		RawMeaning:   meaning,
	}}
}

func (standardStrategy) ColumnMapping() map[int]string {
	return map[int]string{
		0: fieldPage,
		1: fieldNumberInPage,
		2: fieldWord,
		3: fieldYomigana,
		4: fieldMeaning,
	}
}

package importer

import "github.com/kotobanote/kotoba-backend/internal/category"

// proverbGroupStrategy parses proverb-group pages, which mix two
// layouts: the plain five-column form (page, no, word, yomigana,
// meaning) and the labeled six-column form (page, no, label, word,
// yomigana, meaning). The branch is decided per row by whether the
// third column is a position label.
type proverbGroupStrategy struct{}

func (proverbGroupStrategy) Kind() category.ImporterKind { return category.ImporterProverbGroup }

func (proverbGroupStrategy) CanHandle(row []string) bool {
	return len(row) >= 5 && hasPageAndNumber(row)
}

func (proverbGroupStrategy) ParseRow(row []string) []ParsedRow {
	page, number, ok := pageAndNumber(row)
	if !ok {
		return nil
	}

	if isPositionLabel(cell(row, 2)) {
		label := cell(row, 2)
		word := cell(row, 3)
		if word == "" {
			return nil
		}
		return []ParsedRow{{
			Page:         page,
			NumberInPage: number,
			RawWord:      word,
			Yomigana:     cell(row, 4),
			RawMeaning:   cell(row, 5),
			CustomLabel:  &label,
		}}
	}

	word := cell(row, 2)
	if word == "" {
		return nil
	}
	return []ParsedRow{{
		Page:         page,
		NumberInPage: number,
		RawWord:      word,
		Yomigana:     cell(row, 3),
		RawMeaning:   cell(row, 4),
	}}
}

func (proverbGroupStrategy) ColumnMapping() map[int]string {
	// The five-column branch shifts word/yomigana/meaning left by one;
	// the report describes the labeled form, which is the fuller of
	// the two.
	return map[int]string{
		0: fieldPage,
		1: fieldNumberInPage,
		2: fieldCustomLabel,
		3: fieldWord,
		4: fieldYomigana,
		5: fieldMeaning,
	}
}

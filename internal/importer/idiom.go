package importer

import "github.com/kotobanote/kotoba-backend/internal/category"

// idiomStrategy parses the idiom layout:
// page, no, exampleSentence, word, yomigana, meaning.
type idiomStrategy struct{}

func (idiomStrategy) Kind() category.ImporterKind { return category.ImporterIdiom }

func (idiomStrategy) CanHandle(row []string) bool {
	if len(row) < 6 || !hasPageAndNumber(row) {
		return false
	}
	sentence := cell(row, 2)
	if isPositionLabel(sentence) {
		return false
	}
	return isLikelySentence(sentence) && isLikelyReading(cell(row, 4))
}

func (idiomStrategy) ParseRow(row []string) []ParsedRow {
	page, number, ok := pageAndNumber(row)
	if !ok {
		return nil
	}
	word := cell(row, 3)
	meaning := cell(row, 5)
	if word == "" || meaning == "" || cell(row, 2) == "" {
		return nil
	}
	return []ParsedRow{{
		Page:            page,
		NumberInPage:    number,
		RawWord:         word,
		Yomigana:        cell(row, 4),
		RawMeaning:      meaning,
		ExampleSentence: optional(row, 2),
	}}
}

func (idiomStrategy) ColumnMapping() map[int]string {
	return map[int]string{
		0: fieldPage,
		1: fieldNumberInPage,
		2: fieldExample,
		3: fieldWord,
		4: fieldYomigana,
		5: fieldMeaning,
	}
}

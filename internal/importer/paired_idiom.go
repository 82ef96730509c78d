package importer

import "github.com/kotobanote/kotoba-backend/internal/category"

// pairedIdiomStrategy parses the classical-idiom layout:
// page, no, word, yomigana, exampleSentence, exampleSentenceYomigana.
type pairedIdiomStrategy struct{}

func (pairedIdiomStrategy) Kind() category.ImporterKind { return category.ImporterPairedIdiom }

func (pairedIdiomStrategy) CanHandle(row []string) bool {
	if len(row) < 6 || !hasPageAndNumber(row) {
		return false
	}
	word := cell(row, 2)
	if isPositionLabel(word) {
		return false
	}
	return isLikelyWord(word) && isLikelySentence(cell(row, 4))
}

func (pairedIdiomStrategy) ParseRow(row []string) []ParsedRow {
	page, number, ok := pageAndNumber(row)
	if !ok {
		return nil
	}
	word := cell(row, 2)
	if word == "" || cell(row, 4) == "" {
		return nil
	}
	return []ParsedRow{{
		Page:                    page,
		NumberInPage:            number,
		RawWord:                 word,
		Yomigana:                cell(row, 3),
		ExampleSentence:         optional(row, 4),
		ExampleSentenceYomigana: optional(row, 5),
	}}
}

func (pairedIdiomStrategy) ColumnMapping() map[int]string {
	return map[int]string{
		0: fieldPage,
		1: fieldNumberInPage,
		2: fieldWord,
		3: fieldYomigana,
		4: fieldExample,
		5: fieldExampleYomi,
	}
}

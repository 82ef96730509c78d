package importer

import "github.com/kotobanote/kotoba-backend/internal/category"

// homonymStrategy parses the homonym layout:
// page, no, yomigana, word (kanji), exampleSentence, exampleSentenceYomigana.
//
// Homonym pages repeat (page, no) across physical rows, one row per
// candidate spelling; the pipeline folds them into one grouped word.
type homonymStrategy struct{}

func (homonymStrategy) Kind() category.ImporterKind { return category.ImporterHomonym }

func (homonymStrategy) CanHandle(row []string) bool {
	if len(row) < 6 || !hasPageAndNumber(row) {
		return false
	}
	return isLikelyReading(cell(row, 2)) &&
		isLikelySentence(cell(row, 4)) &&
		isLikelyReading(cell(row, 5))
}

func (homonymStrategy) ParseRow(row []string) []ParsedRow {
	page, number, ok := pageAndNumber(row)
	if !ok {
		return nil
	}
	yomi := cell(row, 2)
	word := cell(row, 3)
	if yomi == "" || word == "" {
		return nil
	}
	return []ParsedRow{{
		Page:                    page,
		NumberInPage:            number,
		RawWord:                 word,
		Yomigana:                yomi,
		ExampleSentence:         optional(row, 4),
		ExampleSentenceYomigana: optional(row, 5),
	}}
}

func (homonymStrategy) ColumnMapping() map[int]string {
	return map[int]string{
		0: fieldPage,
		1: fieldNumberInPage,
		2: fieldYomigana,
		3: fieldWord,
		4: fieldExample,
		5: fieldExampleYomi,
	}
}

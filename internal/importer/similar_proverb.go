package importer

import "github.com/kotobanote/kotoba-backend/internal/category"

// similarProverbStrategy parses the strict five-column layout of
// similar-proverb pages: page, no, word, yomigana, meaning.
// Unlike the standard strategy it requires exactly five columns and a
// word-like third cell.
type similarProverbStrategy struct{}

func (similarProverbStrategy) Kind() category.ImporterKind { return category.ImporterSimilarProverb }

func (similarProverbStrategy) CanHandle(row []string) bool {
	return len(row) == 5 && hasPageAndNumber(row) && isLikelyWord(cell(row, 2))
}

func (similarProverbStrategy) ParseRow(row []string) []ParsedRow {
	page, number, ok := pageAndNumber(row)
	if !ok {
		return nil
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

func (similarProverbStrategy) ColumnMapping() map[int]string {
	return map[int]string{
		0: fieldPage,
		1: fieldNumberInPage,
		2: fieldWord,
		3: fieldYomigana,
		4: fieldMeaning,
	}
}

package importer

import "github.com/kotobanote/kotoba-backend/internal/category"

// synonymStrategy parses the paired layout of synonym/antonym pages:
// page, no, then four columns per pair item
// (word, yomigana, exampleSentence, exampleSentenceYomigana);
// columns 2-5 for the 上 item and 6-9 for the 下 item.
//
// One physical row always yields TWO logical rows sharing the same
// (page, no), which the pipeline folds into one word with two group
// members.
type synonymStrategy struct{}

func (synonymStrategy) Kind() category.ImporterKind { return category.ImporterSynonym }

func (synonymStrategy) CanHandle(row []string) bool {
	return len(row) >= 10 && hasPageAndNumber(row)
}

func (synonymStrategy) ParseRow(row []string) []ParsedRow {
	page, number, ok := pageAndNumber(row)
	if !ok {
		return nil
	}

	upper := cell(row, 2)
	lower := cell(row, 6)
	if upper == "" || lower == "" {
		return nil
	}

	labelUpper := "上"
	labelLower := "下"

	return []ParsedRow{
		{
			Page:                    page,
			NumberInPage:            number,
			RawWord:                 upper,
			Yomigana:                cell(row, 3),
			ExampleSentence:         optional(row, 4),
			ExampleSentenceYomigana: optional(row, 5),
			CustomLabel:             &labelUpper,
		},
		{
			Page:                    page,
			NumberInPage:            number,
			RawWord:                 lower,
			Yomigana:                cell(row, 7),
			ExampleSentence:         optional(row, 8),
			ExampleSentenceYomigana: optional(row, 9),
			CustomLabel:             &labelLower,
		},
	}
}

func (synonymStrategy) ColumnMapping() map[int]string {
	return map[int]string{
		0: fieldPage,
		1: fieldNumberInPage,
		2: fieldWord + "(上)",
		3: fieldYomigana + "(上)",
		4: fieldExample + "(上)",
		5: fieldExampleYomi + "(上)",
		6: fieldWord + "(下)",
		7: fieldYomigana + "(下)",
		8: fieldExample + "(下)",
		9: fieldExampleYomi + "(下)",
	}
}

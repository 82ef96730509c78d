package importer

import "github.com/kotobanote/kotoba-backend/internal/category"

// labeledPairStrategy parses the labeled six-column layout:
// page, no, label (上|下), word, yomigana, meaning.
//
// Position and PairedProverb pages share this layout. The registry
// keeps them as two named instances of the one implementation because
// category settings reference importer kinds by name; merging the
// kinds would silently break that indirection.
type labeledPairStrategy struct {
	kind category.ImporterKind
}

func (s labeledPairStrategy) Kind() category.ImporterKind { return s.kind }

func (labeledPairStrategy) CanHandle(row []string) bool {
	return len(row) >= 6 && hasPageAndNumber(row) && isPositionLabel(cell(row, 2))
}

func (labeledPairStrategy) ParseRow(row []string) []ParsedRow {
	page, number, ok := pageAndNumber(row)
	if !ok {
		return nil
	}
	label := cell(row, 2)
	word := cell(row, 3)
	if !isPositionLabel(label) || word == "" {
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

func (labeledPairStrategy) ColumnMapping() map[int]string {
	return map[int]string{
		0: fieldPage,
		1: fieldNumberInPage,
		2: fieldCustomLabel,
		3: fieldWord,
		4: fieldYomigana,
		5: fieldMeaning,
	}
}

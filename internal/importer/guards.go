// Package importer parses category-specific CSV word lists into word
// records. Each CSV column layout is owned by one strategy; the
// registry maps category settings to strategies and supplies the
// fallback chain for rows outside every known scope.
package importer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Placeholder is the blank token used inside example sentences.
const Placeholder = domain.ExamplePlaceholder

// kanaOnly matches readings: kana, the prolonged sound mark, the
// placeholder character, spaces, and common punctuation. Kanji is
// rejected, which is what separates a reading column from a word
// column.
var kanaOnly = regexp.MustCompile(`^[ぁ-ゖァ-ヶーゝゞヽヾ・＿、。！？\s]+$`)

// hasPageAndNumber reports whether the first two columns parse as
// integers, the structural marker of every data row.
func hasPageAndNumber(row []string) bool {
	if len(row) < 2 {
		return false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(row[0])); err != nil {
		return false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(row[1])); err != nil {
		return false
	}
	return true
}

// isPositionLabel reports whether the cell is exactly 上 or 下.
func isPositionLabel(s string) bool {
	return s == "上" || s == "下"
}

// isLikelyReading reports whether the cell looks like a kana reading:
// non-empty, at most 30 runes, no kanji.
func isLikelyReading(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > 30 {
		return false
	}
	return kanaOnly.MatchString(s)
}

// isLikelySentence reports whether the cell looks like a sentence:
// it contains the placeholder blank, or is at least 8 runes long, or
// carries sentence punctuation. This is a heuristic, not a grammar;
// a short plain sentence without punctuation is accepted as a word,
// which is a known approximation.
func isLikelySentence(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, Placeholder) {
		return true
	}
	if utf8.RuneCountInString(s) >= 8 {
		return true
	}
	return strings.ContainsAny(s, "。、！？")
}

// isLikelyWord reports whether the cell looks like a word: non-empty
// and not sentence-like.
func isLikelyWord(s string) bool {
	return s != "" && !isLikelySentence(s)
}

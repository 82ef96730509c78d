// Package reading suggests yomigana for imported words whose CSV rows
// left the reading column empty. Suggestions are best-effort; callers
// keep the empty reading when analysis yields nothing.
package reading

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Suggester derives hiragana readings through morphological analysis.
type Suggester struct {
	t *tokenizer.Tokenizer
}

// NewSuggester builds a suggester over the bundled IPA dictionary. The
// dictionary load is the expensive part; build once and reuse.
func NewSuggester() (*Suggester, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Suggester{t: t}, nil
}

// Suggest returns a hiragana reading for text, or "" when no token
// carries a reading. Feature index 7 of the IPA dictionary holds the
// katakana reading of a token.
func (s *Suggester) Suggest(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var b strings.Builder
	found := false
	for _, token := range s.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		features := token.Features()
		if len(features) > 7 && features[7] != "*" {
			b.WriteString(katakanaToHiragana(features[7]))
			found = true
			continue
		}
		// unknown token, keep the surface so positions line up
		b.WriteString(token.Surface)
	}
	if !found {
		return ""
	}
	return b.String()
}

// katakanaToHiragana shifts katakana runes into the hiragana block.
// The prolonged sound mark and punctuation pass through unchanged.
func katakanaToHiragana(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'ァ' && r <= 'ヶ' {
			r -= 'ァ' - 'ぁ'
		}
		b.WriteRune(r)
	}
	return b.String()
}

package importer

import "testing"

func TestHasPageAndNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{"plain integers", []string{"10", "3", "word"}, true},
		{"padded integers", []string{" 10 ", " 3 "}, true},
		{"non-numeric page", []string{"p10", "3"}, false},
		{"non-numeric number", []string{"10", "三"}, false},
		{"too short", []string{"10"}, false},
		{"empty row", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hasPageAndNumber(tt.row); got != tt.want {
				t.Errorf("hasPageAndNumber(%v) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

func TestIsPositionLabel(t *testing.T) {
	t.Parallel()

	if !isPositionLabel("上") || !isPositionLabel("下") {
		t.Error("上 and 下 are position labels")
	}
	for _, s := range []string{"", "中", "上下", " 上"} {
		if isPositionLabel(s) {
			t.Errorf("isPositionLabel(%q) should be false", s)
		}
	}
}

func TestIsLikelyReading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"hiragana", "ねこにこばん", true},
		{"katakana", "ネコ", true},
		{"prolonged mark", "コーヒー", true},
		{"with placeholder", "かれは＿＿といった。", true},
		{"contains kanji", "猫にこばん", false},
		{"empty", "", false},
		{"too long", "あいうえおかきくけこあいうえおかきくけこあいうえおかきくけこあ", false},
		{"latin", "neko", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isLikelyReading(tt.in); got != tt.want {
				t.Errorf("isLikelyReading(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsLikelySentence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"placeholder blank", "彼は＿＿と言った", true},
		{"long text", "あのひとはとてもやさしいひとだ", true},
		{"punctuation", "行くぞ。", true},
		{"short word", "猫", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isLikelySentence(tt.in); got != tt.want {
				t.Errorf("isLikelySentence(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsLikelyWord(t *testing.T) {
	t.Parallel()

	if !isLikelyWord("猫に小判") {
		t.Error("short kanji text is a word")
	}
	if isLikelyWord("") {
		t.Error("empty cell is not a word")
	}
	if isLikelyWord("彼は＿＿と言った。") {
		t.Error("sentence-like text is not a word")
	}
}

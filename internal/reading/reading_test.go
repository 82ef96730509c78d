package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKatakanaToHiragana(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"イイン", "いいん"},
		{"サルモキカラオチル", "さるもきからおちる"},
		{"コーヒー", "こーひー"},
		{"すでにひらがな", "すでにひらがな"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, katakanaToHiragana(tt.input))
	}
}

func TestSuggester_Suggest(t *testing.T) {
	t.Parallel()

	s, err := NewSuggester()
	require.NoError(t, err)

	assert.Equal(t, "いいん", s.Suggest("委員"))
	assert.Equal(t, "", s.Suggest("   "))
	assert.Equal(t, "", s.Suggest(""))
}

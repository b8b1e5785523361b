package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagged(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"explicit crisis phrase", "I want to end my life", true},
		{"hopeless", "I feel hopeless today", true},
		{"uppercase", "THIS IS AN EMERGENCY", true},
		{"term inside a word", "my plant died yesterday", true}, // substring match is deliberate
		{"calm message", "I had a great day", false},
		{"empty", "", false},
		{"neutral stress", "work was stressful but manageable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flagged(tt.in))
		})
	}
}

func TestEveryLexiconTermFlags(t *testing.T) {
	for _, term := range lexicon {
		assert.True(t, Flagged("context "+term+" context"), "term %q should flag", term)
	}
}

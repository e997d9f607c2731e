package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	members := []string{"Channel", "Pitch", "Velocity", "Amount"}

	tests := []struct {
		name       string
		input      string
		candidates []string
		expected   string
		found      bool
	}{
		{"case", "pitch", members, "Pitch", true},
		{"typo", "Velocty", members, "Velocity", true},
		{"transposition", "Chanenl", members, "Channel", true},
		{"unrelated", "Tempo", members, "", false},
		{"exact is skipped", "Pitch", []string{"Pitch"}, "", false},
		{"verb", "key", []string{"keys"}, "keys", true},
		{"no candidates", "Pitch", nil, "", false},
		{"too short", "ab", []string{"ax", "ay"}, "", false},
		{"closest wins", "Amout", []string{"Amp", "Amount"}, "Amount", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Suggest(tt.input, tt.candidates)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSuggest_TieGoesToEarlier(t *testing.T) {
	got, ok := Suggest("Pitches", []string{"Pitch1", "Pitch2"})
	assert.True(t, ok)
	assert.Equal(t, "Pitch1", got)
}

func TestDidYouMean(t *testing.T) {
	assert.Equal(t, "; did you mean `Velocity`?", DidYouMean("velocty", []string{"Velocity"}))
	assert.Empty(t, DidYouMean("Tempo", []string{"Velocity"}))
}

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"help", "help", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"long", "longs", 1},
		{"short", "shrt", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"ABC", "abc", 3},
		{"naïve", "naive", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	assert.InDelta(t, 1.0, LevenshteinNormalized("", ""), 0.001)
	assert.InDelta(t, 1.0, LevenshteinNormalized("about", "about"), 0.001)
	assert.InDelta(t, 0.0, LevenshteinNormalized("abc", "xyz"), 0.001)
	assert.InDelta(t, 0.8, LevenshteinNormalized("short", "shrt"), 0.001)
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("DryRun", "dry_run"), 0.001)
	assert.InDelta(t, 1.0, Similarity("default-value", "default_value"), 0.001)
	assert.Less(t, Similarity("author", "possible_values"), DefaultMinScore)
}

func BenchmarkLevenshtein(b *testing.B) {
	for b.Loop() {
		Levenshtein("possible_values", "posible_value")
	}
}

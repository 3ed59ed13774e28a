package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "intro", "intro", 1},
		{"case insensitive", "Intro", "iNTRO", 1},
		{"order insensitive", "abc", "cba", 1},
		{"repetition insensitive", "aab", "abbb", 1},
		{"disjoint", "abc", "xyz", 0},
		{"partial", "abcd", "abef", 2.0 / 6.0},
		{"one empty", "", "abc", 0},
		{"both empty", "", "", 1},
		{"unicode", "Öl", "öL", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	inputs := []string{"", "intro", "Introduction", "layers (2)", "osi model", "tcp/ip", "ağ katmanı"}

	for _, a := range inputs {
		for _, b := range inputs {
			assert.Equal(t, Similarity(a, b), Similarity(b, a), "%q vs %q", a, b)
		}
	}
}

func TestSimilarity_Reflexive(t *testing.T) {
	for _, s := range []string{"a", "intro", "Networks (1)", "  spaced  ", "ağ"} {
		assert.Equal(t, 1.0, Similarity(s, s), s)
	}
}

func TestSimilarity_Bounded(t *testing.T) {
	inputs := []string{"", "x", "intro", "outro", "abcdefghijklmnopqrstuvwxyz"}

	for _, a := range inputs {
		for _, b := range inputs {
			score := Similarity(a, b)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

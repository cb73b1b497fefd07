package textscan_test

import (
	"testing"

	"github.com/amulet-team/amulet-bot/internal/moderation/textscan"
	"github.com/stretchr/testify/assert"
)

func TestSimilarityIdentical(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"help", "can I ask a question", "a", "hello world"} {
		assert.InDelta(t, 1.0, textscan.Similarity(s, s), 0, "identical strings must score 1.0: %q", s)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"help", "help me"},
		{"can I ask a question", "can i ask something"},
		{"hello", "goodbye"},
	}

	for _, pair := range pairs {
		ab := textscan.Similarity(pair[0], pair[1])
		ba := textscan.Similarity(pair[1], pair[0])
		assert.InDelta(t, ab, ba, 0.0001, "similarity(%q, %q)", pair[0], pair[1])
	}
}

func TestSimilarityThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		a         string
		b         string
		threshold float64
		above     bool
	}{
		{
			name:      "help matches the help phrase loosely",
			a:         "help",
			b:         "help me",
			threshold: 0.5,
			above:     true,
		},
		{
			name:      "pls help is close enough to help me",
			a:         "pls help",
			b:         "help me",
			threshold: 0.5,
			above:     true,
		},
		{
			name:      "unrelated text stays below the loose threshold",
			a:         "nice weather today",
			b:         "can I ask a question",
			threshold: 0.5,
			above:     false,
		},
		{
			name:      "near-duplicate spam crosses the tight threshold",
			a:         "free nitro at example.com/claim now",
			b:         "free nitro at example.com/claim now!",
			threshold: 0.9,
			above:     true,
		},
		{
			name:      "rewritten text stays below the tight threshold",
			a:         "free nitro at example.com/claim now",
			b:         "my plugin adds chunk editing tools",
			threshold: 0.9,
			above:     false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := textscan.Similarity(tt.a, tt.b)
			if tt.above {
				assert.Greater(t, got, tt.threshold)
			} else {
				assert.Less(t, got, tt.threshold)
			}
		})
	}
}

func TestSimilarityDisjoint(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, textscan.Similarity("xyz", "qwv"), 0)
	assert.InDelta(t, 0.0, textscan.Similarity("", "something"), 0)
}

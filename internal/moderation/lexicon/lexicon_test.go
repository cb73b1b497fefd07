package lexicon_test

import (
	"testing"

	"github.com/amulet-team/amulet-bot/internal/moderation/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	t.Parallel()

	lex, err := lexicon.New([]string{"grief", "Dupe"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "standalone word",
			input: "stop trying to grief the server",
			want:  true,
		},
		{
			name:  "word at start of text",
			input: "grief is not allowed",
			want:  true,
		},
		{
			name:  "word at end of text",
			input: "I saw them grief",
			want:  true,
		},
		{
			name:  "word followed by period",
			input: "they tried to grief.",
			want:  true,
		},
		{
			name:  "mixed case",
			input: "GRIEF all you want",
			want:  true,
		},
		{
			name:  "plural form added automatically",
			input: "no griefs allowed",
			want:  true,
		},
		{
			name:  "word list entry is lower-cased",
			input: "that is a dupe",
			want:  true,
		},
		{
			name:  "word on a later line",
			input: "first line\ngrief\nlast line",
			want:  true,
		},
		{
			name:  "substring of a longer word does not match",
			input: "the griefing was reported",
			want:  false,
		},
		{
			name:  "word embedded with prefix does not match",
			input: "regrief is not a word",
			want:  false,
		},
		{
			name:  "clean text",
			input: "a perfectly fine message",
			want:  false,
		},
		{
			name:  "empty text",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lex.Contains(tt.input))
		})
	}
}

func TestNewEmptyWordList(t *testing.T) {
	t.Parallel()

	_, err := lexicon.New(nil)
	assert.ErrorIs(t, err, lexicon.ErrEmptyWordList)

	_, err = lexicon.New([]string{"", "  "})
	assert.ErrorIs(t, err, lexicon.ErrEmptyWordList)
}

func TestNewEscapesMetaCharacters(t *testing.T) {
	t.Parallel()

	lex, err := lexicon.New([]string{"a.b"})
	require.NoError(t, err)

	assert.True(t, lex.Contains("this a.b here"))
	assert.False(t, lex.Contains("this aXb here"))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	got := lexicon.Normalize([]string{"Grief", "grief", " dupe ", "mess"})
	assert.Equal(t, []string{"dupe", "dupes", "grief", "griefs", "mess"}, got)
}

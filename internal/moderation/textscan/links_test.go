package textscan_test

import (
	"testing"

	"github.com/amulet-team/amulet-bot/internal/moderation/textscan"
	"github.com/stretchr/testify/assert"
)

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "HTTPS URL with path",
			input: "check this out https://example.com/x",
			want:  true,
		},
		{
			name:  "HTTP URL",
			input: "http://example.com",
			want:  true,
		},
		{
			name:  "bare domain without scheme",
			input: "see example.com/downloads for the file",
			want:  true,
		},
		{
			name:  "URL at start of message",
			input: "https://discord.gg/abc123",
			want:  true,
		},
		{
			name:  "plain text",
			input: "no links in here",
			want:  false,
		},
		{
			name:  "sentence ending in a word and period",
			input: "I finished the build today.",
			want:  false,
		},
		{
			name:  "empty string",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, textscan.IsURL(tt.input))
		})
	}
}

func TestIsSourceHostURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "HTTPS repository link",
			input: "check out https://github.com/foo/bar",
			want:  true,
		},
		{
			name:  "HTTP repository link with www",
			input: "http://www.github.com/foo/bar",
			want:  true,
		},
		{
			name:  "repository link inside longer message",
			input: "my plugin lives at https://github.com/amulet/plugin and it is great",
			want:  true,
		},
		{
			name:  "site root only",
			input: "https://github.com",
			want:  false,
		},
		{
			name:  "different host",
			input: "https://example.com/foo/bar",
			want:  false,
		},
		{
			name:  "no scheme",
			input: "github.com/foo/bar",
			want:  false,
		},
		{
			name:  "empty string",
			input: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, textscan.IsSourceHostURL(tt.input))
		})
	}
}

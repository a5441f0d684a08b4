package pullrequest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Input
	}{
		{"number", "123", Input{Number: 123}},
		{"padded number", "  42 \n", Input{Number: 42}},
		{"url", "https://github.com/acme/widgets/pull/7", Input{Number: 7, Owner: "acme", Repo: "widgets"}},
		{"url with suffix", "https://github.com/acme/widgets/pull/7/files", Input{Number: 7, Owner: "acme", Repo: "widgets"}},
		{"mixed case host", "HTTPS://GitHub.com/Acme/Widgets/PULL/9", Input{Number: 9, Owner: "Acme", Repo: "Widgets"}},
		{"no scheme", "github.com/acme/widgets/pull/1", Input{Number: 1, Owner: "acme", Repo: "widgets"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInput_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12a", "#12", "https://github.com/acme/widgets/issues/7", "https://gitlab.com/a/b/pull/1x"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseInput(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestInput_String(t *testing.T) {
	assert.Equal(t, "#5", Input{Number: 5}.String())
	assert.Equal(t, "acme/widgets#5", Input{Number: 5, Owner: "acme", Repo: "widgets"}.String())
	assert.False(t, Input{Number: 5, Owner: "acme"}.HasRepo())
}

func TestExtractLinks(t *testing.T) {
	body := `## Context
Open vscode://nstrayer.show-your-work/open?gist=abc123 to review.
Alt: VSCODE://nstrayer.show-your-work/open?gist=DEF456.
Again: vscode://nstrayer.show-your-work/open?gist=abc123
Not hex: vscode://nstrayer.show-your-work/open?gist=xyz`

	links := ExtractLinks(body)
	assert.Equal(t, []string{
		"vscode://nstrayer.show-your-work/open?gist=abc123",
		"VSCODE://nstrayer.show-your-work/open?gist=DEF456",
	}, links)

	assert.Empty(t, ExtractLinks("nothing here"))
	assert.NotNil(t, ExtractLinks(""))
}

func TestGistIDFromLink(t *testing.T) {
	id, ok := GistIDFromLink(LinkPrefix + "abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)

	id, ok = GistIDFromLink("vscode://nstrayer.show-your-work/open?GIST=BEEF")
	assert.True(t, ok)
	assert.Equal(t, "BEEF", id)

	_, ok = GistIDFromLink("vscode://nstrayer.show-your-work/open")
	assert.False(t, ok)
}

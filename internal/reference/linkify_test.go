package reference

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hrefPattern = regexp.MustCompile(`href="([^"]+)"`)

func hrefs(t *testing.T, html string) []string {
	t.Helper()
	var out []string
	for _, m := range hrefPattern.FindAllStringSubmatch(html, -1) {
		out = append(out, m[1])
	}
	return out
}

func TestLinkify(t *testing.T) {
	t.Run("converts to anchor with command locator", func(t *testing.T) {
		result := Linkify("See src/file.ts:45 for details")
		assert.Contains(t, result, "<a href=")
		assert.Contains(t, result, "command:showYourWork.openFile")
		assert.Contains(t, result, ">src/file.ts:45</a>")
		assert.Contains(t, result, `class="file-reference"`)
		assert.Contains(t, result, `title="Open src/file.ts at line 45"`)
	})

	t.Run("payload carries line and column", func(t *testing.T) {
		links := hrefs(t, Linkify("Error at src/file.ts:45:10"))
		require.Len(t, links, 1)

		p, err := DecodePayload(links[0])
		require.NoError(t, err)
		assert.Equal(t, Payload{Path: "src/file.ts", Line: 45, Column: 10}, p)
	})

	t.Run("column defaults to 1", func(t *testing.T) {
		links := hrefs(t, Linkify("See src/file.ts:45"))
		require.Len(t, links, 1)

		p, err := DecodePayload(links[0])
		require.NoError(t, err)
		assert.Equal(t, 1, p.Column)
	})

	t.Run("dot slash prefix kept in label but not in payload", func(t *testing.T) {
		result := Linkify("open ./cmd/main.go:3")
		assert.Contains(t, result, ">./cmd/main.go:3</a>")

		p, err := DecodePayload(hrefs(t, result)[0])
		require.NoError(t, err)
		assert.Equal(t, "cmd/main.go", p.Path)
	})

	t.Run("multiple references become multiple anchors", func(t *testing.T) {
		result := Linkify("See src/a.ts:10 and src/b.ts:20")
		assert.Equal(t, 2, strings.Count(result, "<a href="))
	})

	t.Run("repeated references are each wrapped", func(t *testing.T) {
		result := Linkify("src/a.ts:1 src/a.ts:1")
		assert.Equal(t, 2, strings.Count(result, "<a href="))
	})

	t.Run("preserves surrounding content", func(t *testing.T) {
		result := Linkify("Before src/file.ts:45 after")
		assert.True(t, strings.HasPrefix(result, "Before "))
		assert.True(t, strings.HasSuffix(result, " after"))
	})

	t.Run("markdown links are not rewritten", func(t *testing.T) {
		text := "Check [the function](src/auth/login.ts#L45)"
		assert.Equal(t, text, Linkify(text))
	})

	t.Run("does not modify references in backticks", func(t *testing.T) {
		text := "Use `src/file.ts:45` in your code"
		assert.Equal(t, text, Linkify(text))
	})

	t.Run("bytes outside matches are copied verbatim", func(t *testing.T) {
		tests := []struct {
			name   string
			before string
			after  string
		}{
			{"invalid utf-8", "\xff see ", " \xfe"},
			{"multibyte runes", "日本語 see ", " → done"},
			{"mixed", "é\xff ", "\xc3 ü"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ref := "a.go:1"
				result := Linkify(tt.before + ref + tt.after)

				links := hrefs(t, result)
				require.Len(t, links, 1)
				want := tt.before + anchor(Reference{Path: "a.go", Line: 1, Original: ref}) + tt.after
				assert.Equal(t, want, result)
			})
		}
	})

	t.Run("returns input unchanged when no matches", func(t *testing.T) {
		for _, text := range []string{"", "No file references here", "  \n\t "} {
			assert.Equal(t, text, Linkify(text))
		}
	})
}

func TestLinkify_RoundTrip(t *testing.T) {
	text := "Start at ./internal/app.go:12, then pkg/util/strings_test.go:7:3 and web/index.html:1."

	refs := Extract(text)
	links := hrefs(t, Linkify(text))
	require.Len(t, links, len(refs))

	for i, ref := range refs {
		p, err := DecodePayload(links[i])
		require.NoError(t, err)
		assert.Equal(t, ref.Path, p.Path)
		assert.Equal(t, ref.Line, p.Line)
		want := ref.Column
		if want == 0 {
			want = 1
		}
		assert.Equal(t, want, p.Column)
	}
}

func TestDecodePayload(t *testing.T) {
	t.Run("rejects foreign links", func(t *testing.T) {
		_, err := DecodePayload("https://example.com")
		assert.ErrorIs(t, err, ErrNotCommandLink)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := DecodePayload(CommandLocator + "%7Bnope")
		assert.Error(t, err)
	})

	t.Run("rejects missing path", func(t *testing.T) {
		_, err := DecodePayload(CommandLocator + "%7B%22line%22%3A1%7D")
		assert.Error(t, err)
	})

	t.Run("spaces encoded as %20", func(t *testing.T) {
		href := Payload{Path: "my dir/a.go", Line: 2, Column: 1}.Href()
		assert.NotContains(t, href, "+")
		assert.Contains(t, href, "%20")

		p, err := DecodePayload(href)
		require.NoError(t, err)
		assert.Equal(t, "my dir/a.go", p.Path)
	})

	t.Run("plus signs survive", func(t *testing.T) {
		href := Payload{Path: "c++/a.cc", Line: 2, Column: 1}.Href()
		p, err := DecodePayload(href)
		require.NoError(t, err)
		assert.Equal(t, "c++/a.cc", p.Path)
	})
}

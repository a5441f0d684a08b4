package reference

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dlclark/regexp2"
)

// CommandLocator prefixes every href produced by Linkify. The display
// surface intercepts clicks on it and hands the payload to the opener.
const CommandLocator = "command:showYourWork.openFile?"

// ErrNotCommandLink is returned by DecodePayload for hrefs that do not
// start with CommandLocator.
var ErrNotCommandLink = errors.New("not a file reference link")

// Payload is the structured object carried by a linkified reference.
type Payload struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Linkify wraps every colon-notation reference in text with an anchor
// addressed to CommandLocator. The matched text stays as the visible
// label; everything else passes through untouched. Markdown links are
// already anchors and are not rewritten.
func Linkify(text string) string {
	offsets := runeOffsets(text)
	var b strings.Builder
	last := 0
	eachMatch(colonPattern, text, func(m *regexp2.Match) {
		start, end := offsets[m.Index], offsets[m.Index+m.Length]
		b.WriteString(text[last:start])
		b.WriteString(anchor(fromColonMatch(m)))
		last = end
	})
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// runeOffsets maps the rune indices regexp2 reports to byte offsets in s.
// Each invalid UTF-8 byte counts as one rune, as in []rune(s). The final
// entry is len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// PayloadFor returns the payload Linkify embeds for ref. Column defaults
// to 1.
func PayloadFor(ref Reference) Payload {
	col := ref.Column
	if col <= 0 {
		col = 1
	}
	return Payload{Path: ref.Path, Line: ref.Line, Column: col}
}

// Href returns the command locator for p.
func (p Payload) Href() string {
	raw, _ := json.Marshal(p) // plain struct, cannot fail
	return CommandLocator + encodeComponent(string(raw))
}

// DecodePayload recovers the payload from an href produced by Linkify.
func DecodePayload(href string) (Payload, error) {
	var p Payload
	if !strings.HasPrefix(href, CommandLocator) {
		return p, ErrNotCommandLink
	}
	raw, err := url.PathUnescape(strings.TrimPrefix(href, CommandLocator))
	if err != nil {
		return p, fmt.Errorf("decoding payload: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return p, fmt.Errorf("parsing payload: %w", err)
	}
	if p.Path == "" {
		return p, fmt.Errorf("parsing payload: path is empty")
	}
	return p, nil
}

func anchor(ref Reference) string {
	p := PayloadFor(ref)
	return fmt.Sprintf(`<a href="%s" class="file-reference" title="Open %s at line %d">%s</a>`,
		p.Href(), ref.Path, ref.Line, ref.Original)
}

// encodeComponent percent-encodes s the way browsers' encodeURIComponent
// does for the characters JSON can produce: spaces become %20, not "+".
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

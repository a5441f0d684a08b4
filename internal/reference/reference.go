package reference

import (
	"errors"
	"strconv"

	"github.com/dlclark/regexp2"
)

// Reference is a file location found in text.
type Reference struct {
	// Path is relative, without a leading "./".
	Path string `json:"path"`

	// Line is 1-based. Zero means the match carried no line.
	Line int `json:"line,omitempty"`

	// Column is 1-based. Zero means absent.
	Column int `json:"column,omitempty"`

	// Original is the matched substring, verbatim.
	Original string `json:"original"`
}

// HasColumn reports whether the reference carried an explicit column.
func (r Reference) HasColumn() bool {
	return r.Column > 0
}

// Extract returns the references in text.
//
// All colon-notation matches come first, in text order, followed by all
// markdown-link matches. Entries are unique by Original: a literal that
// repeats anywhere in text is reported once. The result is never nil.
func Extract(text string) []Reference {
	refs := make([]Reference, 0)
	seen := make(map[string]struct{})

	add := func(ref Reference) {
		if _, ok := seen[ref.Original]; ok {
			return
		}
		seen[ref.Original] = struct{}{}
		refs = append(refs, ref)
	}

	eachMatch(colonPattern, text, func(m *regexp2.Match) {
		add(fromColonMatch(m))
	})

	eachMatch(markdownPattern, text, func(m *regexp2.Match) {
		path, _ := group(m, 2)
		line, _ := group(m, 3)
		add(Reference{
			Path:     path,
			Line:     atoi(line),
			Original: m.String(),
		})
	})

	return refs
}

func fromColonMatch(m *regexp2.Match) Reference {
	path, _ := group(m, 1)
	line, _ := group(m, 2)
	ref := Reference{
		Path:     path,
		Line:     atoi(line),
		Original: m.String(),
	}
	if col, ok := group(m, 3); ok {
		ref.Column = atoi(col)
	}
	return ref
}

// atoi parses a run of ASCII digits. Values too large for int saturate,
// which keeps Extract total on absurd inputs.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return n
}

package reference

import (
	"github.com/dlclark/regexp2"
)

// Character classes are spelled out instead of \w and \d: the .NET syntax
// regexp2 implements treats those as Unicode classes.
const (
	colonExpr = "(?<![`\\](A-Za-z0-9_])" + // not after backtick, ], (, or word char
		"(?:\\./)?" +
		"([A-Za-z0-9_\\-./]+\\.[A-Za-z0-9]+)" +
		":([0-9]+)" +
		"(?::([0-9]+))?" +
		"(?![`A-Za-z0-9_])" // not before backtick or word char

	markdownExpr = `\[([^\]]+)\]\(([^)#]+)#L([0-9]+)(?:-L[0-9]+)?\)`
)

var (
	colonPattern    = regexp2.MustCompile(colonExpr, regexp2.None)
	markdownPattern = regexp2.MustCompile(markdownExpr, regexp2.None)
)

// eachMatch calls fn for every match of re in text, left to right.
// A matcher error (only possible on timeout) ends the scan.
func eachMatch(re *regexp2.Regexp, text string, fn func(m *regexp2.Match)) {
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		fn(m)
		m, err = re.FindNextMatch(m)
	}
}

// group returns the text of capture group n and whether it participated.
func group(m *regexp2.Match, n int) (string, bool) {
	g := m.GroupByNumber(n)
	if g == nil || len(g.Captures) == 0 {
		return "", false
	}
	return g.String(), true
}

package bundle

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// gistHost is matched case-sensitively before the case-insensitive
// extraction below runs.
const gistHost = "gist.github.com"

var gistURLPattern = regexp.MustCompile(`(?i)gist\.github\.com/[^/]+/([a-f0-9]+)`)

// NormalizeID turns a raw gist ID, a gist URL, or a percent-encoded form of
// either into a bare gist ID. It never fails; undecodable input is used as is.
//
//	NormalizeID("https://gist.github.com/user/abc123#file-a-md") // "abc123"
//	NormalizeID("  abc123#frag  ")                               // "abc123"
func NormalizeID(input string) string {
	decoded, err := url.PathUnescape(input)
	if err != nil {
		decoded = input
	}

	if strings.Contains(decoded, gistHost) {
		if m := gistURLPattern.FindStringSubmatch(decoded); m != nil {
			return m[1]
		}
	}

	raw, _, _ := strings.Cut(decoded, "#")
	return strings.TrimSpace(raw)
}

// OpenPath is the only path accepted by ParseOpenURI.
const OpenPath = "/open"

var (
	// ErrUnknownPath is returned for an open URI whose path is not OpenPath.
	ErrUnknownPath = errors.New("unknown URI path")

	// ErrMissingGist is returned for an open URI without a gist parameter.
	ErrMissingGist = errors.New("missing gist parameter")
)

// ParseOpenURI validates an open link such as
// vscode://nstrayer.show-your-work/open?gist=<id-or-url> and returns the
// normalized gist ID it points at.
func ParseOpenURI(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URI: %w", err)
	}
	if u.Path != OpenPath {
		return "", fmt.Errorf("%w: %s", ErrUnknownPath, u.Path)
	}

	gist := u.Query().Get("gist")
	if gist == "" {
		return "", ErrMissingGist
	}
	return NormalizeID(gist), nil
}

package pullrequest

import "regexp"

// LinkPrefix starts every show-your-work open link.
const LinkPrefix = "vscode://nstrayer.show-your-work/open?gist="

var (
	linkPattern   = regexp.MustCompile(`(?i)vscode://nstrayer\.show-your-work/open\?gist=[a-f0-9]+`)
	gistIDPattern = regexp.MustCompile(`(?i)gist=([a-f0-9]+)`)
)

// ExtractLinks returns the distinct open links in text, in order of first
// appearance.
func ExtractLinks(text string) []string {
	matches := linkPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		links = append(links, m)
	}
	return links
}

// GistIDFromLink returns the gist ID carried by an open link.
func GistIDFromLink(link string) (string, bool) {
	m := gistIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

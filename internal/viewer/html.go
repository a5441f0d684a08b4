package viewer

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fyrsmithlabs/showyourwork/internal/bundle"
	"github.com/fyrsmithlabs/showyourwork/internal/reference"
)

const (
	// DefaultTitle is the page title for a bundle without a description.
	DefaultTitle = "PR Context"
	// DefaultHeading is the page heading for a bundle without a description.
	DefaultHeading = "PR Planning Context"
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

// HTMLRenderer turns bundles into HTML pages. It is safe for concurrent use.
type HTMLRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	// OpenFileEndpoint is where the page posts clicked references.
	OpenFileEndpoint string
}

// NewHTMLRenderer creates a renderer that posts clicked references to
// openFileEndpoint. An empty endpoint leaves references inert.
func NewHTMLRenderer(openFileEndpoint string) *HTMLRenderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[A-Za-z0-9_+-]+$`)).OnElements("code")

	return &HTMLRenderer{
		md:               goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:           policy,
		OpenFileEndpoint: openFileEndpoint,
	}
}

type pageFile struct {
	Filename string
	Content  template.HTML
}

type pageData struct {
	Title            string
	Heading          string
	Owner            string
	URL              string
	Files            []pageFile
	OpenFileEndpoint string
	CommandPrefix    string
}

// Render returns the full HTML page for b.
func (r *HTMLRenderer) Render(b *bundle.Bundle) (string, error) {
	data := pageData{
		Title:            orDefault(b.Description, DefaultTitle),
		Heading:          orDefault(b.Description, DefaultHeading),
		Owner:            b.Owner,
		URL:              b.URL,
		OpenFileEndpoint: r.OpenFileEndpoint,
		CommandPrefix:    reference.CommandLocator,
	}

	for _, f := range b.Files {
		content, err := r.RenderFile(f)
		if err != nil {
			return "", err
		}
		data.Files = append(data.Files, pageFile{Filename: f.Filename, Content: content})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}

// RenderFile returns the HTML body of one file with references linkified.
func (r *HTMLRenderer) RenderFile(f bundle.File) (template.HTML, error) {
	if IsMarkdown(f.Filename) {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(f.Content), &buf); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", f.Filename, err)
		}
		// Sanitize before linkifying: the policy would drop command: hrefs.
		safe := r.policy.Sanitize(buf.String())
		return template.HTML(reference.Linkify(safe)), nil //nolint:gosec // sanitized above
	}

	escaped := html.EscapeString(f.Content)
	return template.HTML("<pre><code>" + reference.Linkify(escaped) + "</code></pre>"), nil //nolint:gosec // escaped above
}

// IsMarkdown reports whether filename is rendered as markdown.
func IsMarkdown(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

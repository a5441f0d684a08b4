package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/showyourwork/internal/bundle"
	"github.com/fyrsmithlabs/showyourwork/internal/reference"
)

// TerminalOptions controls RenderTerminal.
type TerminalOptions struct {
	// Style is a glamour standard style name ("dark", "light", "notty",
	// "ascii", ...) or "auto" to detect from the terminal.
	Style string
	// WordWrap is the wrap column; zero disables wrapping.
	WordWrap int
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	metaStyle  = lipgloss.NewStyle().Faint(true)
	refStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// RenderTerminal renders b as styled terminal text followed by the list of
// file references found in it.
func RenderTerminal(b *bundle.Bundle, opts TerminalOptions) (string, error) {
	style := glamour.WithAutoStyle()
	if opts.Style != "" && opts.Style != "auto" {
		style = glamour.WithStandardStyle(opts.Style)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(opts.WordWrap))
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	body, err := r.Render(terminalMarkdown(b))
	if err != nil {
		return "", fmt.Errorf("failed to render bundle: %w", err)
	}

	var out strings.Builder
	out.WriteString(titleStyle.Render(orDefault(b.Description, DefaultHeading)))
	out.WriteString("\n")
	meta := "By " + b.Owner
	if b.URL != "" {
		meta += "  " + b.URL
	}
	out.WriteString(metaStyle.Render(meta))
	out.WriteString("\n")
	out.WriteString(body)

	if refs := bundleReferences(b); len(refs) > 0 {
		out.WriteString("\nReferences:\n")
		for _, ref := range refs {
			out.WriteString("  ")
			out.WriteString(refStyle.Render(formatReference(ref)))
			out.WriteString("\n")
		}
	}
	return out.String(), nil
}

// terminalMarkdown joins the files into one markdown document. Non-markdown
// files become fenced code blocks.
func terminalMarkdown(b *bundle.Bundle) string {
	var doc strings.Builder
	for i, f := range b.Files {
		if i > 0 {
			doc.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&doc, "## %s\n\n", f.Filename)
		if IsMarkdown(f.Filename) {
			doc.WriteString(f.Content)
			doc.WriteString("\n")
			continue
		}
		fence := "```"
		for strings.Contains(f.Content, fence) {
			fence += "`"
		}
		fmt.Fprintf(&doc, "%s%s\n%s\n%s\n", fence, strings.ToLower(f.Language), strings.TrimRight(f.Content, "\n"), fence)
	}
	return doc.String()
}

// bundleReferences collects the distinct references across all files.
func bundleReferences(b *bundle.Bundle) []reference.Reference {
	var refs []reference.Reference
	seen := make(map[string]struct{})
	for _, f := range b.Files {
		for _, ref := range reference.Extract(f.Content) {
			key := formatReference(ref)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			refs = append(refs, ref)
		}
	}
	return refs
}

func formatReference(ref reference.Reference) string {
	if ref.HasColumn() {
		return fmt.Sprintf("%s:%d:%d", ref.Path, ref.Line, ref.Column)
	}
	return fmt.Sprintf("%s:%d", ref.Path, ref.Line)
}

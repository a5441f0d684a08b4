package ghcli

import (
	"errors"
	"strings"
)

// Guidance turns a gh failure into a hint for the user. It returns an
// empty string when the error carries no recognizable cause.
func Guidance(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	switch {
	case errors.Is(err, ErrNotInstalled) || strings.Contains(msg, "gh: command not found"):
		return "GitHub CLI (gh) not found. Please install it: https://cli.github.com"
	case strings.Contains(msg, "not logged in"):
		return "Not authenticated with GitHub CLI. Run 'gh auth login' in your terminal."
	case strings.Contains(msg, "Could not resolve"):
		return "Could not determine repository. Please provide a full PR URL or run from within a git repository."
	}
	return ""
}

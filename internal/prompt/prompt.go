// Package prompt holds the agent command template that produces
// show-your-work gists, and installs it into a workspace.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CommandPath is where Install writes the template, relative to the
// workspace root.
var CommandPath = filepath.Join(".claude", "commands", "show-your-work.md")

// ErrExists is returned by Install when the command file is already
// present and overwrite is false.
var ErrExists = errors.New("command file already exists")

//go:embed show-your-work.md
var template string

// Template returns the command template.
func Template() string {
	return template
}

// Install writes the template to CommandPath under root, creating the
// directories it needs, and returns the written path.
func Install(root string, overwrite bool) (string, error) {
	if root == "" {
		return "", errors.New("no workspace root given")
	}

	target := filepath.Join(root, CommandPath)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create commands directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(target, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return target, fmt.Errorf("%w: %s", ErrExists, target)
		}
		return "", fmt.Errorf("failed to open %s: %w", target, err)
	}
	defer f.Close()

	if _, err := f.WriteString(template); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	return target, nil
}

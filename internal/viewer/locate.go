package viewer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fyrsmithlabs/showyourwork/internal/reference"
)

var (
	// ErrNoWorkspace is returned when no workspace roots are configured.
	ErrNoWorkspace = errors.New("no workspace folder open, cannot navigate to file reference")

	// ErrFileNotFound is returned when no root contains the referenced file.
	ErrFileNotFound = errors.New("file not found")
)

// Location is a resolved file position. Line and Column are zero-based.
type Location struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	// HasPosition is false when the reference carried no line.
	HasPosition bool `json:"has_position"`
}

// GotoArg formats the location as path:line:column with one-based
// numbers, the form editors accept on the command line.
func (l Location) GotoArg() string {
	if !l.HasPosition {
		return l.Path
	}
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line+1, l.Column+1)
}

// Locate finds the file named by p in the first root that contains it.
// Paths that would escape a root are skipped.
func Locate(roots []string, p reference.Payload) (Location, error) {
	if len(roots) == 0 {
		return Location{}, ErrNoWorkspace
	}

	for _, root := range roots {
		candidate, ok := within(root, p.Path)
		if !ok {
			continue
		}
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}

		loc := Location{Path: candidate}
		if p.Line > 0 {
			col := p.Column
			if col == 0 {
				col = 1
			}
			loc.Line = max(0, p.Line-1)
			loc.Column = max(0, col-1)
			loc.HasPosition = true
		}
		return loc, nil
	}

	return Location{}, fmt.Errorf("%w: %s. Make sure you have the relevant repository checked out", ErrFileNotFound, p.Path)
}

// within joins rel onto root and reports whether the result stays inside
// root.
func within(root, rel string) (string, bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	joined := filepath.Join(absRoot, rel)
	r, err := filepath.Rel(absRoot, joined)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", false
	}
	return joined, true
}

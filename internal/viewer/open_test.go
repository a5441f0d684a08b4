package viewer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandOpener(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "args")
	script := filepath.Join(dir, "editor")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\" > "+out+"\n"), 0700))

	loc := Location{Path: "/ws/a.go", Line: 4, Column: 0, HasPosition: true}
	require.NoError(t, CommandOpener{Command: []string{script, "--goto"}}.Open(context.Background(), loc))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "--goto /ws/a.go:5:1\n", string(got))
}

func TestCommandOpener_Errors(t *testing.T) {
	err := CommandOpener{}.Open(context.Background(), Location{Path: "a"})
	assert.ErrorContains(t, err, "no editor command")

	err = CommandOpener{Command: []string{filepath.Join(t.TempDir(), "missing")}}.Open(context.Background(), Location{Path: "a"})
	assert.Error(t, err)
}

package bundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fyrsmithlabs/showyourwork/internal/ghcli"
)

// CLIChannel fetches gists with `gh gist view`, using whatever
// authentication the local gh installation has.
type CLIChannel struct {
	runner ghcli.Runner
	dir    string
}

// NewCLIChannel creates a channel that runs gh in dir.
func NewCLIChannel(runner ghcli.Runner, dir string) *CLIChannel {
	return &CLIChannel{runner: runner, dir: dir}
}

// Name implements Channel.
func (c *CLIChannel) Name() string { return "cli" }

type cliGist struct {
	Description string   `json:"description"`
	Files       fileList `json:"files"`
	Owner       *struct {
		Login string `json:"login"`
	} `json:"owner"`
	URL string `json:"url"`
}

// Fetch implements Channel.
func (c *CLIChannel) Fetch(ctx context.Context, id string) (*Bundle, error) {
	out, err := c.runner.Run(ctx, c.dir, "gist", "view", id, "--json", "description,files,owner,url")
	if err != nil {
		return nil, err
	}

	var g cliGist
	if err := json.Unmarshal(out, &g); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}
	if g.Files == nil {
		return nil, errors.New("failed to parse gh output: no files")
	}

	owner := ""
	if g.Owner != nil {
		owner = g.Owner.Login
	}
	return newBundle(id, g.Description, owner, g.URL, g.Files), nil
}

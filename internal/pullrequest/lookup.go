package pullrequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/showyourwork/internal/ghcli"
	"github.com/fyrsmithlabs/showyourwork/internal/logging"
)

// ErrNoCurrentPR is returned when the current branch has no open pull
// request, or it cannot be determined.
var ErrNoCurrentPR = errors.New("no pull request found for the current branch")

// PR is a pull request detected for the current branch.
type PR struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// Lookup reads pull request data through gh, with the REST API as a
// fallback.
type Lookup struct {
	runner ghcli.Runner
	dir    string
	api    *github.Client
	logger *logging.Logger
}

// NewLookup creates a Lookup that runs gh in dir. api may be nil to
// disable the REST fallback.
func NewLookup(runner ghcli.Runner, dir string, api *github.Client, logger *logging.Logger) *Lookup {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Lookup{runner: runner, dir: dir, api: api, logger: logger}
}

// Body returns the description of the pull request in.
//
// gh is tried first. If it fails and the repository is known, from in or
// from the origin remote of the working directory, the REST API is tried.
// The gh error is kept in the returned error so callers can classify it.
func (l *Lookup) Body(ctx context.Context, in Input) (string, error) {
	args := []string{"pr", "view", strconv.Itoa(in.Number)}
	if in.HasRepo() {
		args = append(args, "--repo", in.RepoArg())
	}
	args = append(args, "--json", "body", "--jq", ".body")

	out, cliErr := l.runner.Run(ctx, l.dir, args...)
	if cliErr == nil {
		return string(out), nil
	}

	if l.api == nil {
		return "", cliErr
	}

	repo := Repository{Owner: in.Owner, Name: in.Repo}
	if !in.HasRepo() {
		detected, err := DetectRepository(l.dir)
		if err != nil {
			return "", cliErr
		}
		repo = detected
	}

	l.logger.Debug(ctx, "gh pr view failed, trying REST API",
		zap.String("repo", repo.Owner+"/"+repo.Name),
		zap.Int("number", in.Number),
		zap.Error(cliErr))

	pr, _, err := l.api.PullRequests.Get(ctx, repo.Owner, repo.Name, in.Number)
	if err != nil {
		return "", fmt.Errorf("%w (api fallback: %v)", cliErr, err)
	}
	return pr.GetBody(), nil
}

// Current returns the open pull request for the checked-out branch.
func (l *Lookup) Current(ctx context.Context) (*PR, error) {
	out, err := l.runner.Run(ctx, l.dir, "pr", "view", "--json", "number,title")
	if err == nil {
		var pr PR
		if jsonErr := json.Unmarshal(out, &pr); jsonErr == nil && pr.Number != 0 && pr.Title != "" {
			return &pr, nil
		}
	}

	if l.api == nil {
		return nil, ErrNoCurrentPR
	}
	return l.currentFromAPI(ctx)
}

// currentFromAPI finds an open PR whose head is the current branch.
func (l *Lookup) currentFromAPI(ctx context.Context) (*PR, error) {
	repo, err := DetectRepository(l.dir)
	if err != nil {
		return nil, ErrNoCurrentPR
	}
	branch, err := CurrentBranch(l.dir)
	if err != nil || branch == "" {
		return nil, ErrNoCurrentPR
	}

	prs, _, err := l.api.PullRequests.List(ctx, repo.Owner, repo.Name, &github.PullRequestListOptions{
		State: "open",
		Head:  repo.Owner + ":" + branch,
	})
	if err != nil {
		l.logger.Debug(ctx, "listing pull requests failed", zap.Error(err))
		return nil, ErrNoCurrentPR
	}
	for _, pr := range prs {
		if pr.GetNumber() != 0 && strings.TrimSpace(pr.GetTitle()) != "" {
			return &PR{Number: pr.GetNumber(), Title: pr.GetTitle()}, nil
		}
	}
	return nil, ErrNoCurrentPR
}

package pullrequest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNoRepository is returned when a directory has no GitHub origin remote.
var ErrNoRepository = errors.New("no GitHub repository found")

// Repository is a GitHub owner/name pair.
type Repository struct {
	Owner string
	Name  string
}

var (
	sshRemotePattern   = regexp.MustCompile(`git@github\.com:([^/]+)/([^/]+?)(?:\.git)?/?$`)
	httpsRemotePattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// DetectRepository reads the origin remote of the repository containing dir.
func DetectRepository(dir string) (Repository, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return Repository{}, err
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return Repository{}, fmt.Errorf("%w: %v", ErrNoRepository, err)
	}

	for _, u := range remote.Config().URLs {
		if r, ok := parseRemoteURL(u); ok {
			return r, nil
		}
	}
	return Repository{}, ErrNoRepository
}

// CurrentBranch returns the checked-out branch of the repository containing
// dir, or "" for a detached HEAD.
func CurrentBranch(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return "", nil
}

func openRepo(dir string) (*git.Repository, error) {
	if dir == "" {
		dir = "."
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRepository, err)
	}
	return repo, nil
}

// parseRemoteURL handles git@github.com:owner/repo.git and
// https://github.com/owner/repo(.git).
func parseRemoteURL(u string) (Repository, bool) {
	u = strings.TrimSpace(u)
	for _, p := range []*regexp.Regexp{sshRemotePattern, httpsRemotePattern} {
		if m := p.FindStringSubmatch(u); m != nil {
			return Repository{Owner: m[1], Name: m[2]}, true
		}
	}
	return Repository{}, false
}

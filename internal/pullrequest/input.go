package pullrequest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned when input is neither a number nor a PR URL.
var ErrInvalidInput = errors.New("invalid input: enter a PR number or a GitHub PR URL")

var (
	numberPattern = regexp.MustCompile(`^[0-9]+$`)
	prURLPattern  = regexp.MustCompile(`(?i)github\.com/([^/]+)/([^/]+)/pull/([0-9]+)`)
)

// Input identifies a pull request. Owner and Repo are empty when only a
// number was given.
type Input struct {
	Number int
	Owner  string
	Repo   string
}

// HasRepo reports whether the input names its repository.
func (in Input) HasRepo() bool {
	return in.Owner != "" && in.Repo != ""
}

// RepoArg returns "owner/repo" for gh's --repo flag.
func (in Input) RepoArg() string {
	return in.Owner + "/" + in.Repo
}

func (in Input) String() string {
	if in.HasRepo() {
		return fmt.Sprintf("%s#%d", in.RepoArg(), in.Number)
	}
	return fmt.Sprintf("#%d", in.Number)
}

// ParseInput accepts "123" or a URL such as
// https://github.com/owner/repo/pull/123.
func ParseInput(s string) (Input, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Input{}, ErrInvalidInput
	}

	if numberPattern.MatchString(trimmed) {
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return Input{Number: n}, nil
	}

	if m := prURLPattern.FindStringSubmatch(trimmed); m != nil {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return Input{Number: n, Owner: m[1], Repo: m[2]}, nil
	}

	return Input{}, ErrInvalidInput
}

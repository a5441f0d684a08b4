package pullrequest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with one commit on branch and an origin
// remote pointing at remoteURL (skipped when empty).
func initRepo(t *testing.T, remoteURL, branch string) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	if remoteURL != "" {
		_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{remoteURL}})
		require.NoError(t, err)
	}

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# test\n"), 0600))
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	hash, err := wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	if branch != "" {
		ref := plumbing.NewBranchReferenceName(branch)
		require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(ref, hash)))
		require.NoError(t, wt.Checkout(&git.CheckoutOptions{Branch: ref}))
	}
	return dir
}

func TestDetectRepository(t *testing.T) {
	tests := []struct {
		remote string
		want   Repository
	}{
		{"git@github.com:acme/widgets.git", Repository{Owner: "acme", Name: "widgets"}},
		{"https://github.com/acme/widgets.git", Repository{Owner: "acme", Name: "widgets"}},
		{"https://github.com/acme/widgets", Repository{Owner: "acme", Name: "widgets"}},
		{"ssh://git@github.com/acme/gadgets.git", Repository{Owner: "acme", Name: "gadgets"}},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			dir := initRepo(t, tt.remote, "")
			got, err := DetectRepository(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectRepository_Subdirectory(t *testing.T) {
	dir := initRepo(t, "git@github.com:acme/widgets.git", "")
	sub := filepath.Join(dir, "pkg", "inner")
	require.NoError(t, os.MkdirAll(sub, 0700))

	got, err := DetectRepository(sub)
	require.NoError(t, err)
	assert.Equal(t, Repository{Owner: "acme", Name: "widgets"}, got)
}

func TestDetectRepository_Errors(t *testing.T) {
	_, err := DetectRepository(t.TempDir())
	assert.ErrorIs(t, err, ErrNoRepository)

	_, err = DetectRepository(initRepo(t, "", ""))
	assert.ErrorIs(t, err, ErrNoRepository)

	_, err = DetectRepository(initRepo(t, "https://gitlab.com/acme/widgets.git", ""))
	assert.ErrorIs(t, err, ErrNoRepository)
}

func TestCurrentBranch(t *testing.T) {
	dir := initRepo(t, "", "feature/links")
	branch, err := CurrentBranch(dir)
	require.NoError(t, err)
	assert.Equal(t, "feature/links", branch)

	_, err = CurrentBranch(t.TempDir())
	assert.ErrorIs(t, err, ErrNoRepository)
}

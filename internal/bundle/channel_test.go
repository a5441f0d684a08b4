package bundle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/showyourwork/internal/ghcli"
	"github.com/fyrsmithlabs/showyourwork/internal/githubapi"
)

type fakeRunner struct {
	out  []byte
	err  error
	dir  string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) ([]byte, error) {
	f.dir = dir
	f.args = args
	return f.out, f.err
}

func TestCLIChannel_Fetch(t *testing.T) {
	runner := &fakeRunner{out: []byte(`{
		"description": "PR context",
		"files": {
			"plan.md": {"content": "# Plan", "language": "Markdown"},
			"notes.txt": {"content": "see src/a.ts:1"}
		},
		"owner": {"login": "octocat"},
		"url": "https://gist.github.com/octocat/abc123"
	}`)}

	b, err := NewCLIChannel(runner, "/work").Fetch(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "/work", runner.dir)
	assert.Equal(t, []string{"gist", "view", "abc123", "--json", "description,files,owner,url"}, runner.args)

	assert.Equal(t, "abc123", b.ID)
	assert.Equal(t, "PR context", b.Description)
	assert.Equal(t, "octocat", b.Owner)
	assert.Equal(t, "https://gist.github.com/octocat/abc123", b.URL)
	assert.Equal(t, []File{
		{Filename: "plan.md", Content: "# Plan", Language: "Markdown"},
		{Filename: "notes.txt", Content: "see src/a.ts:1"},
	}, b.Files, "files keep gh's order")
}

func TestCLIChannel_Defaults(t *testing.T) {
	runner := &fakeRunner{out: []byte(`{"description": null, "files": {}, "owner": null, "url": "u"}`)}

	b, err := NewCLIChannel(runner, "").Fetch(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "", b.Description)
	assert.Equal(t, UnknownOwner, b.Owner)
	assert.Empty(t, b.Files)
}

func TestCLIChannel_Errors(t *testing.T) {
	t.Run("runner error passes through", func(t *testing.T) {
		runErr := &ghcli.Error{Args: []string{"gist", "view"}, Stderr: "not logged in", Err: errors.New("exit status 1")}
		_, err := NewCLIChannel(&fakeRunner{err: runErr}, "").Fetch(context.Background(), "abc123")
		assert.ErrorIs(t, err, runErr)
		assert.Contains(t, err.Error(), "not logged in")
	})

	t.Run("malformed output", func(t *testing.T) {
		_, err := NewCLIChannel(&fakeRunner{out: []byte("not json")}, "").Fetch(context.Background(), "abc123")
		assert.ErrorContains(t, err, "failed to parse gh output")
	})

	t.Run("missing files", func(t *testing.T) {
		_, err := NewCLIChannel(&fakeRunner{out: []byte(`{"description":"d"}`)}, "").Fetch(context.Background(), "abc123")
		assert.ErrorContains(t, err, "no files")
	})
}

func newGistServer(t *testing.T, handler http.HandlerFunc) *APIChannel {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := githubapi.NewClient(githubapi.ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return NewAPIChannel(client, 0)
}

func TestAPIChannel_Fetch(t *testing.T) {
	ch := newGistServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gists/abc123", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "abc123",
			"description": "Agent notes",
			"files": {
				"z.go": {"filename": "z.go", "content": "package z", "language": "Go"},
				"a.md": {"filename": "a.md", "content": "see [x](a.go#L3)"}
			},
			"owner": {"login": "hubot"},
			"html_url": "https://gist.github.com/hubot/abc123"
		}`))
	})

	b, err := ch.Fetch(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, &Bundle{
		ID:          "abc123",
		Description: "Agent notes",
		Files: []File{
			{Filename: "z.go", Content: "package z", Language: "Go"},
			{Filename: "a.md", Content: "see [x](a.go#L3)"},
		},
		Owner: "hubot",
		URL:   "https://gist.github.com/hubot/abc123",
	}, b)
}

func TestAPIChannel_MissingOwnerAndDescription(t *testing.T) {
	ch := newGistServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"description": null, "owner": null, "files": {}, "html_url": "h"}`))
	})

	b, err := ch.Fetch(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, UnknownOwner, b.Owner)
	assert.Equal(t, "", b.Description)
	assert.Equal(t, "h", b.URL)
}

func TestAPIChannel_NonSuccessStatus(t *testing.T) {
	ch := newGistServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	_, err := ch.Fetch(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch gist: Not Found")
}

func TestAPIChannel_FallbackEndToEnd(t *testing.T) {
	api := newGistServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"files": {"f.txt": {"content": "x"}}, "owner": {"login": "o"}, "html_url": "h"}`))
	})
	cli := NewCLIChannel(&fakeRunner{err: ghcli.ErrNotInstalled}, "")

	b, err := NewResolver(cli, api).Fetch(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "o", b.Owner)
	assert.Equal(t, "abc123", b.ID)
}

func TestAPIChannel_RateLimitHonorsContext(t *testing.T) {
	var calls atomic.Int32
	ch := newGistServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"files": {}}`))
	})
	ch.limiter = newTestLimiter()

	_, err := ch.Fetch(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ch.Fetch(ctx, "b")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

// newTestLimiter allows one request per hour with a burst of one.
func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Hour), 1)
}

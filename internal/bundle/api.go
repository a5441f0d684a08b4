package bundle

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"
)

// APIChannel fetches public gists from the GitHub REST API.
type APIChannel struct {
	client  *github.Client
	limiter *rate.Limiter
}

// NewAPIChannel creates a REST channel. A positive ratePerMinute paces
// requests client side; calls wait for a token and are never retried.
func NewAPIChannel(client *github.Client, ratePerMinute int) *APIChannel {
	ch := &APIChannel{client: client}
	if ratePerMinute > 0 {
		ch.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), ratePerMinute)
	}
	return ch
}

// Name implements Channel.
func (c *APIChannel) Name() string { return "api" }

// Fetch implements Channel.
func (c *APIChannel) Fetch(ctx context.Context, id string) (*Bundle, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("failed to fetch gist: %w", err)
		}
	}

	req, err := c.client.NewRequest(http.MethodGet, "gists/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gist: %w", err)
	}

	// Decoded here rather than into github.Gist, whose Files map loses the
	// order the API lists files in.
	var g apiGist
	resp, err := c.client.Do(ctx, req, &g)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to fetch gist: %s: %w", http.StatusText(resp.StatusCode), err)
		}
		return nil, fmt.Errorf("failed to fetch gist: %w", err)
	}

	return newBundle(id, g.Description, g.Owner.GetLogin(), g.HTMLURL, g.Files), nil
}

type apiGist struct {
	Description string       `json:"description"`
	Files       fileList     `json:"files"`
	Owner       *github.User `json:"owner"`
	HTMLURL     string       `json:"html_url"`
}

// Package githubapi builds unauthenticated GitHub REST clients.
package githubapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
)

// DefaultTimeout bounds one REST request when ClientConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// ClientConfig holds GitHub client configuration.
type ClientConfig struct {
	// BaseURL defaults to https://api.github.com/. A trailing slash is added
	// when missing.
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is then ignored.
	HTTPClient *http.Client
}

// NewClient creates a GitHub client. No token is attached: only public
// resources are reachable.
func NewClient(cfg ClientConfig) (*github.Client, error) {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	client := github.NewClient(hc)
	if cfg.BaseURL == "" {
		return client, nil
	}

	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: scheme and host required", cfg.BaseURL)
	}
	client.BaseURL = u
	return client, nil
}

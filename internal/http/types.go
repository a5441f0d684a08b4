package http

import (
	"github.com/fyrsmithlabs/showyourwork/internal/reference"
	"github.com/fyrsmithlabs/showyourwork/internal/viewer"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	// Current is the ID of the bundle on display, if any.
	Current string `json:"current,omitempty"`
}

// TextRequest is the request body for POST /api/v1/references and
// POST /api/v1/linkify.
type TextRequest struct {
	Text string `json:"text"`
}

// ReferencesResponse is the response body for POST /api/v1/references.
type ReferencesResponse struct {
	References []reference.Reference `json:"references"`
}

// LinkifyResponse is the response body for POST /api/v1/linkify.
type LinkifyResponse struct {
	Text string `json:"text"`
}

// OpenFileRequest is the request body for POST /api/v1/open-file. Either
// Href (a linkified anchor target) or Path is required.
type OpenFileRequest struct {
	Href   string `json:"href,omitempty"`
	Path   string `json:"path,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// OpenFileResponse is the response body for POST /api/v1/open-file.
type OpenFileResponse struct {
	Location viewer.Location `json:"location"`
	Opened   bool            `json:"opened"`
}

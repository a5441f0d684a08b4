// Package pullrequest finds show-your-work links in pull request
// descriptions.
//
// A pull request is named by a bare number, resolved against the repository
// of the working directory, or by a full github.com URL. Lookup reads the
// description through the gh CLI and falls back to the REST API when the
// repository is known.
package pullrequest

package github

import "errors"

var (
	// ErrRateLimited indicates the GitHub API quota is exhausted.
	ErrRateLimited = errors.New("github: rate limit exceeded")

	// ErrUpstream indicates any other upstream failure. The message is
	// deliberately generic; details are logged server-side only.
	ErrUpstream = errors.New("github: search request failed")
)

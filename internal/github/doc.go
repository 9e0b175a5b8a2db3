// Package github is a thin client for the GitHub repository search API.
//
// The client classifies upstream failures into two sentinel errors so
// callers can distinguish quota exhaustion from everything else:
// ErrRateLimited when GitHub reports an exhausted rate limit, and
// ErrUpstream for any other non-success status, transport failure, or
// malformed body. It never retries; backoff policy belongs to the caller.
package github

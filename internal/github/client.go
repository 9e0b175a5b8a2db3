package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/repobook/repobook/pkg/logger"
)

const rateLimitRemainingHeader = "X-RateLimit-Remaining"

// Client calls the GitHub search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        *slog.Logger
}

// NewClient creates a GitHub API client from the provided config.
// A nil logger discards client logs.
func NewClient(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		log:        log,
	}
}

// Search queries the repository search endpoint. The caller is responsible
// for clamping perPage to [1,100] and page to >= 1 before invocation.
//
// Failures are classified: an exhausted rate limit maps to ErrRateLimited,
// everything else to ErrUpstream.
func (c *Client) Search(ctx context.Context, query string, perPage, page int) (*SearchResult, error) {
	u := fmt.Sprintf("%s/search/repositories?q=%s&per_page=%d&page=%d",
		c.baseURL, url.QueryEscape(query), perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Join(ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "github search transport failure",
			logger.Error(err), logger.Component("github"))
		return nil, errors.Join(ErrUpstream, err)
	}
	defer resp.Body.Close()

	if err := c.classifyStatus(ctx, resp); err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.ErrorContext(ctx, "github search response unparseable",
			logger.Error(err), logger.Component("github"))
		return nil, errors.Join(ErrUpstream, err)
	}

	return &result, nil
}

// classifyStatus maps a non-success response to a typed error.
// GitHub signals quota exhaustion with 403 (or 429) plus a zero
// X-RateLimit-Remaining header; a plain 403 without that signal is an
// ordinary upstream failure.
func (c *Client) classifyStatus(ctx context.Context, resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		if resp.Header.Get(rateLimitRemainingHeader) == "0" {
			c.log.WarnContext(ctx, "github rate limit exceeded", logger.Component("github"))
			return ErrRateLimited
		}
	}

	c.log.ErrorContext(ctx, "github search returned non-success status",
		slog.String("status", strconv.Itoa(resp.StatusCode)),
		logger.Component("github"))
	return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
}

package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client with rate limiting and error mapping.
type Client struct {
	gh      *gh.Client
	limiter *RateLimiter
}

// NewClient creates a GitHub API client. An empty token yields an anonymous
// client, which is enough for public documentation branches but carries a
// much smaller request quota.
func NewClient(ctx context.Context, token string) *Client {
	var hc *http.Client
	quota := AuthenticatedQuota

	if token == "" {
		hc = &http.Client{Timeout: DefaultTimeout}
		quota = AnonymousQuota
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Timeout = DefaultTimeout
	}

	return &Client{
		gh:      gh.NewClient(hc),
		limiter: NewRateLimiter(quota),
	}
}

// GitHub returns the underlying go-github client.
func (c *Client) GitHub() *gh.Client {
	return c.gh
}

// RateLimiter returns the rate limiter for external inspection.
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

// BranchHead returns the head commit SHA of a branch.
func (c *Client) BranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	ref, resp, err := c.gh.Git.GetRef(ctx, owner, repo, "refs/heads/"+branch)
	if err != nil {
		return "", c.wrapError(err, resp, "get ref")
	}
	c.observe(resp)

	return ref.GetObject().GetSHA(), nil
}

// Tree fetches the recursive tree at a commit or tree SHA. One call returns
// every path in the documentation tree.
func (c *Client) Tree(ctx context.Context, owner, repo, sha string) (*gh.Tree, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, sha, true)
	if err != nil {
		return nil, c.wrapError(err, resp, "get tree")
	}
	c.observe(resp)

	return tree, nil
}

// Blob fetches a blob by SHA and decodes its content.
func (c *Client) Blob(ctx context.Context, owner, repo, sha string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	blob, resp, err := c.gh.Git.GetBlob(ctx, owner, repo, sha)
	if err != nil {
		return nil, c.wrapError(err, resp, "get blob")
	}
	c.observe(resp)

	if blob.GetEncoding() == "base64" {
		raw := strings.ReplaceAll(blob.GetContent(), "\n", "")
		return base64.StdEncoding.DecodeString(raw)
	}
	return []byte(blob.GetContent()), nil
}

// ValidateAccess checks the repository is reachable with the current client.
func (c *Client) ValidateAccess(ctx context.Context, owner, repo string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return c.wrapError(err, resp, "get repository")
	}
	c.observe(resp)

	return nil
}

// observe feeds response headers into the rate limiter.
func (c *Client) observe(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	_ = c.limiter.Observe(resp.Response)
}

// wrapError converts go-github errors to this package's error types.
func (c *Client) wrapError(err error, resp *gh.Response, operation string) error {
	if err == nil {
		return nil
	}
	c.observe(resp)

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		remaining, limit, resetAt := c.limiter.Snapshot()
		return &RateLimitError{ResetAt: resetAt, Remaining: remaining, Limit: limit}
	}

	return fmt.Errorf("%s: %w", operation, err)
}

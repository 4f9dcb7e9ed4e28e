// Package github fetches public profile statistics from the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"

	"github.com/Sumatoshi-tech/codefolio/pkg/lru"
)

const profileCacheEntries = 16

// FailureMessage is shown in place of the stats when they cannot be loaded.
const FailureMessage = "Failed to load GitHub stats."

// ProfileStats are the public counters of a GitHub account.
type ProfileStats struct {
	Login       string `json:"login"        yaml:"login"`
	PublicRepos int    `json:"public_repos" yaml:"public_repos"`
	PublicGists int    `json:"public_gists" yaml:"public_gists"`
	Followers   int    `json:"followers"    yaml:"followers"`
	Following   int    `json:"following"    yaml:"following"`
}

// Client wraps the GitHub API client with rate limiting.
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	cache       *lru.Cache[string, ProfileStats]
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}

		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse base url: %w", err)
		}

		c.client.BaseURL = u

		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		base := c.client.BaseURL
		c.client = github.NewClient(hc)
		c.client.BaseURL = base

		return nil
	}
}

// WithCache keeps fetched profiles for ttl, so repeated lookups skip the API.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) error {
		c.cache = lru.New(profileCacheEntries, lru.WithTTL[string, ProfileStats](ttl))

		return nil
	}
}

// NewClient creates a client allowing ratePerSecond calls per second. An
// empty token makes unauthenticated calls.
func NewClient(token string, ratePerSecond float64, opts ...Option) (*Client, error) {
	c := &Client{
		client:      github.NewClient(nil),
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if token != "" {
		c.client = c.client.WithAuthToken(token)
	}

	return c, nil
}

// Profile returns the public counters of user.
func (c *Client) Profile(ctx context.Context, user string) (ProfileStats, error) {
	if c.cache != nil {
		if stats, ok := c.cache.Get(user); ok {
			return stats, nil
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return ProfileStats{}, fmt.Errorf("rate limiter: %w", err)
	}

	u, _, err := c.client.Users.Get(ctx, user)
	if err != nil {
		return ProfileStats{}, fmt.Errorf("fetch user %s: %w", user, err)
	}

	stats := ProfileStats{
		Login:       u.GetLogin(),
		PublicRepos: u.GetPublicRepos(),
		PublicGists: u.GetPublicGists(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
	}

	if c.cache != nil {
		c.cache.Put(user, stats)
	}

	return stats, nil
}

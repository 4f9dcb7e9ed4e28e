package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codefolio/internal/github"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return srv
}

func TestProfile(t *testing.T) {
	t.Parallel()

	auth := make(chan string, 1)

	srv := newServer(t, func(rw http.ResponseWriter, hr *http.Request) {
		auth <- hr.Header.Get("Authorization")

		if hr.URL.Path != "/users/mkalsi13" {
			http.NotFound(rw, hr)

			return
		}

		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write([]byte(`{"login":"mkalsi13","public_repos":12,"public_gists":1,"followers":7,"following":3}`))
	})

	client, err := github.NewClient("secret", 100, github.WithBaseURL(srv.URL))
	require.NoError(t, err)

	stats, err := client.Profile(context.Background(), "mkalsi13")
	require.NoError(t, err)

	assert.Equal(t, github.ProfileStats{
		Login:       "mkalsi13",
		PublicRepos: 12,
		PublicGists: 1,
		Followers:   7,
		Following:   3,
	}, stats)
	assert.Equal(t, "Bearer secret", <-auth)
}

func TestProfile_Anonymous(t *testing.T) {
	t.Parallel()

	auth := make(chan string, 1)

	srv := newServer(t, func(rw http.ResponseWriter, hr *http.Request) {
		auth <- hr.Header.Get("Authorization")

		_, _ = rw.Write([]byte(`{"login":"x"}`))
	})

	client, err := github.NewClient("", 100, github.WithBaseURL(srv.URL), github.WithHTTPClient(&http.Client{Timeout: time.Second}))
	require.NoError(t, err)

	stats, err := client.Profile(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "x", stats.Login)
	assert.Empty(t, <-auth)
}

func TestProfile_Errors(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(rw http.ResponseWriter, hr *http.Request) {
		http.NotFound(rw, hr)
	})

	client, err := github.NewClient("", 100, github.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Profile(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch user ghost")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Profile(ctx, "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}

func TestProfile_Cache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	srv := newServer(t, func(rw http.ResponseWriter, _ *http.Request) {
		calls.Add(1)

		_, _ = rw.Write([]byte(`{"login":"octo","public_repos":4}`))
	})

	client, err := github.NewClient("", 100, github.WithBaseURL(srv.URL), github.WithCache(time.Hour))
	require.NoError(t, err)

	for range 3 {
		stats, profileErr := client.Profile(context.Background(), "octo")
		require.NoError(t, profileErr)
		assert.Equal(t, 4, stats.PublicRepos)
	}

	assert.Equal(t, int32(1), calls.Load())
}

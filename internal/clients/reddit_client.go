package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/spacesedan/socialpulse/internal/models"
)

const (
	REDDIT_PUBLIC_URL = "https://www.reddit.com"
	REDDIT_OAUTH_URL  = "https://oauth.reddit.com"
	REDDIT_AUTH_URL   = "https://www.reddit.com/api/v1/access_token"
)

type RedditClient struct {
	client  *http.Client
	baseURL string
}

// NewRedditClient builds a client against Reddit's public JSON endpoints.
// When REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET are present the
// client-credentials flow is used against the OAuth API instead, which has
// far more generous rate limits.
func NewRedditClient() *RedditClient {
	clientID := os.Getenv("REDDIT_CLIENT_ID")
	clientSecret := os.Getenv("REDDIT_CLIENT_SECRET")

	if clientID != "" && clientSecret != "" {
		oauthConf := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     REDDIT_AUTH_URL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		httpClient := oauthConf.Client(context.Background())
		httpClient.Timeout = HTTP_TIMEOUT

		slog.Info("[RedditClient] Using authenticated Reddit API")
		return &RedditClient{client: httpClient, baseURL: REDDIT_OAUTH_URL}
	}

	slog.Info("[RedditClient] No Reddit credentials set, using public JSON endpoints")
	return &RedditClient{
		client:  &http.Client{Timeout: HTTP_TIMEOUT},
		baseURL: REDDIT_PUBLIC_URL,
	}
}

// NewRedditClientWithBaseURL is for tests that point the client at a local
// HTTP server.
func NewRedditClientWithBaseURL(client *http.Client, baseURL string) *RedditClient {
	return &RedditClient{client: client, baseURL: baseURL}
}

// FetchNewPosts returns the "newest" listing for one subreddit.
func (rc *RedditClient) FetchNewPosts(ctx context.Context, subreddit string, limit int) (*models.RedditListingResponse, error) {
	endpoint := fmt.Sprintf("%s/r/%s/new.json", rc.baseURL, subreddit)
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	return rc.getListing(ctx, endpoint, params)
}

// SearchPosts runs a sitewide search for posts from the last week.
func (rc *RedditClient) SearchPosts(ctx context.Context, query string, limit int) (*models.RedditListingResponse, error) {
	endpoint := rc.baseURL + "/search.json"
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "new")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("t", "week")

	return rc.getListing(ctx, endpoint, params)
}

func (rc *RedditClient) getListing(ctx context.Context, endpoint string, params url.Values) (*models.RedditListingResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := rc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[RedditClient] unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	var listing models.RedditListingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("[RedditClient] failed to decode listing: %w", err)
	}
	return &listing, nil
}

package placeholder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mysocialapp/backend/internal/telemetry/metrics"
	"github.com/mysocialapp/backend/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// ErrUnavailable covers every way the remote data source can fail us:
// network errors, non-2xx statuses and undecodable payloads.
var ErrUnavailable = errors.New("remote data source unavailable")

const (
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	cacheExpireSeconds = 60
)

// Client is a typed, read-only client for the jsonplaceholder-shaped
// remote data source. Responses are cached briefly, keyed by path.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewClient(baseURL string, httpClient *http.Client, metricsManager *metrics.Manager) *Client {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Client{
		baseURL:        baseURL,
		httpClient:     httpClient,
		cache:          freecache.NewCache(cacheSize),
		metricsManager: metricsManager,
	}
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/users", "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UserByID(ctx context.Context, id int) (*User, error) {
	user := &User{}
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", id), "users", user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, "/posts", "posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) PostsByUser(ctx context.Context, userID int) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, fmt.Sprintf("/posts?userId=%d", userID), "posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) PostByID(ctx context.Context, id int) (*Post, error) {
	post := &Post{}
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/%d", id), "posts", post); err != nil {
		return nil, err
	}
	return post, nil
}

func (c *Client) PostComments(ctx context.Context, postID int) ([]Comment, error) {
	var comments []Comment
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/%d/comments", postID), "comments", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) Comments(ctx context.Context) ([]Comment, error) {
	var comments []Comment
	if err := c.getJSON(ctx, "/comments", "comments", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// getJSON fetches baseURL+path and decodes the response into dest,
// going through the response cache first.
func (c *Client) getJSON(ctx context.Context, path, collection string, dest any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "placeholderClient.get "+path)
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.countFetch(collection, "error")
		} else {
			span.SetStatus(codes.Ok, "ok")
			c.countFetch(collection, "ok")
		}
	}()

	cacheKey := []byte(path)
	if cachedBytes, cacheErr := c.cache.Get(cacheKey); cacheErr == nil {
		if err := json.Unmarshal(cachedBytes, dest); err == nil {
			log.Tracef("placeholder client: cache hit for %s", path)
			return nil
		}
		log.Errorf("placeholder client: failed to unmarshal cached response for %s", path)
		// fall through and refetch
	}

	url := c.baseURL + path
	log.Debugf("placeholder client: calling %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: new request: %s", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: http client do: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d for %s", ErrUnavailable, resp.StatusCode, path)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %s", ErrUnavailable, err)
	}

	if err := json.Unmarshal(respBytes, dest); err != nil {
		return fmt.Errorf("%w: unmarshal response for %s: %s", ErrUnavailable, path, err)
	}

	if err := c.cache.Set(cacheKey, respBytes, cacheExpireSeconds); err != nil {
		log.Errorf("placeholder client: failed to cache response for %s: %s", path, err)
	}

	return nil
}

func (c *Client) countFetch(collection, outcome string) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.CounterRemoteFetches.WithLabelValues(collection, outcome).Inc()
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"showlog/internal/models"
)

const (
	tmdbAPIURL         = "https://api.themoviedb.org/3"
	defaultTimeout     = 10 * time.Second
	requestsPerSecond  = 4
	maxRetries         = 3
	retryDelay         = 2 * time.Second
	userAgent          = "showlog/1.0"
	maxResponseSize    = 5 * 1024 * 1024
	searchCachePrefix  = "tmdb:search:"
	detailsCachePrefix = "tmdb:details:"
	creditsCachePrefix = "tmdb:credits:"
	searchCacheTTL     = 4 * time.Hour
	detailsCacheTTL    = 24 * time.Hour
)

// TMDBClient talks to The Movie Database API. Responses are cached in
// redis by endpoint and parameters (the api key never appears in cache
// keys), requests are rate limited and retried with backoff.
type TMDBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	redis      *redis.Client
	logger     *logrus.Logger
	maxRetries int
	retryDelay time.Duration
}

type TMDBClientConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Logger     *logrus.Logger
	Redis      *redis.Client
}

func NewTMDBClient(config *TMDBClientConfig) *TMDBClient {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.BaseURL == "" {
		config.BaseURL = tmdbAPIURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = maxRetries
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = retryDelay
	}

	return &TMDBClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		redis:      config.Redis,
		logger:     config.Logger,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}
}

func (c *TMDBClient) SearchMovies(ctx context.Context, query string) (*models.TMDBSearchResponse, error) {
	var result models.TMDBSearchResponse
	params := url.Values{"query": {query}}
	if err := c.get(ctx, "search/movie", params, searchCachePrefix, searchCacheTTL, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TMDBClient) SearchTVShows(ctx context.Context, query string) (*models.TMDBSearchResponse, error) {
	var result models.TMDBSearchResponse
	params := url.Values{"query": {query}}
	if err := c.get(ctx, "search/tv", params, searchCachePrefix, searchCacheTTL, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TMDBClient) GetMovieDetails(ctx context.Context, tmdbID int) (*models.TMDBMovieDetails, error) {
	var result models.TMDBMovieDetails
	endpoint := fmt.Sprintf("movie/%d", tmdbID)
	if err := c.get(ctx, endpoint, nil, detailsCachePrefix, detailsCacheTTL, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TMDBClient) GetTVDetails(ctx context.Context, tmdbID int) (*models.TMDBTVDetails, error) {
	var result models.TMDBTVDetails
	endpoint := fmt.Sprintf("tv/%d", tmdbID)
	if err := c.get(ctx, endpoint, nil, detailsCachePrefix, detailsCacheTTL, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TMDBClient) GetMovieCredits(ctx context.Context, tmdbID int) (*models.TMDBCredits, error) {
	var result models.TMDBCredits
	endpoint := fmt.Sprintf("movie/%d/credits", tmdbID)
	if err := c.get(ctx, endpoint, nil, creditsCachePrefix, detailsCacheTTL, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TMDBClient) GetTVCredits(ctx context.Context, tmdbID int) (*models.TMDBCredits, error) {
	var result models.TMDBCredits
	endpoint := fmt.Sprintf("tv/%d/credits", tmdbID)
	if err := c.get(ctx, endpoint, nil, creditsCachePrefix, detailsCacheTTL, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// get fetches an endpoint through the cache: redis first, then the API,
// writing successful responses back with the given TTL. Cache failures
// are logged and degrade to a plain API call.
func (c *TMDBClient) get(ctx context.Context, endpoint string, params url.Values, prefix string, ttl time.Duration, dest any) error {
	cacheKey := prefix + endpoint
	if len(params) > 0 {
		cacheKey += "?" + params.Encode()
	}

	if c.redis != nil {
		cached, err := c.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			if err := json.Unmarshal([]byte(cached), dest); err == nil {
				c.logger.WithField("key", cacheKey).Debug("TMDb cache hit")
				return nil
			}
			c.logger.WithField("key", cacheKey).Warn("Failed to unmarshal cached TMDb response")
		} else if err != redis.Nil {
			c.logger.WithError(err).Warn("Failed to read from Redis")
		}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	body, err := c.makeRequest(ctx, requestURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode TMDb response: %w", err)
	}

	if c.redis != nil {
		if err := c.redis.Set(ctx, cacheKey, body, ttl).Err(); err != nil {
			c.logger.WithError(err).Warn("Failed to write TMDb response to cache")
		}
	}
	return nil
}

func (c *TMDBClient) makeRequest(ctx context.Context, requestURL string) ([]byte, error) {
	var rErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			rErr = fmt.Errorf("failed to make HTTP request: %w", err)
			c.retryLogger(attempt, rErr)
			c.waitForRetry(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			rErr = fmt.Errorf("TMDb returned status code %d", resp.StatusCode)
			c.retryLogger(attempt, rErr)
			c.waitForRetry(ctx, attempt)
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
		resp.Body.Close()
		if err != nil {
			rErr = fmt.Errorf("failed to read response body: %w", err)
			c.retryLogger(attempt, rErr)
			c.waitForRetry(ctx, attempt)
			continue
		}
		if len(body) > maxResponseSize {
			return nil, fmt.Errorf("response too large: exceeded %d bytes", maxResponseSize)
		}

		c.logger.WithFields(logrus.Fields{
			"attempt":       attempt,
			"response_size": len(body),
		}).Debug("TMDb request successful")
		return body, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.maxRetries, rErr)
}

func (c *TMDBClient) retryLogger(attempt int, err error) {
	c.logger.WithFields(logrus.Fields{
		"attempt": attempt + 1,
		"error":   err.Error(),
	}).Warn("TMDb request failed, retrying...")
}

func (c *TMDBClient) waitForRetry(ctx context.Context, attempt int) {
	if attempt >= c.maxRetries-1 {
		return
	}
	delay := time.Duration(attempt+1) * c.retryDelay
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}

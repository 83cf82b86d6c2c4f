package unlocker

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"hakyeong/rocketcrawler/config"
	"hakyeong/rocketcrawler/logger"
	"hakyeong/rocketcrawler/pkg/errors"
	"hakyeong/rocketcrawler/services/cache"
)

// request headers forwarded to the target site through the unlocker
var targetHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/128.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
	"Referer":                   "https://www.coupang.com/",
	"Upgrade-Insecure-Requests": "1",
}

// unlockerRequest is the request body of the Bright Data request API
type unlockerRequest struct {
	Zone    string            `json:"zone"`
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Format  string            `json:"format"`
	Country string            `json:"country"`
	Headers map[string]string `json:"headers"`
}

// Client fetches pages through the Bright Data web-unlocker request API.
// Transport failures are retried with linearly increasing backoff; an HTTP
// error status from the API is terminal. Successful bodies are normalized
// to UTF-8 and optionally cached by target URL.
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
	zone       string
	country    string
	retries    int
	backoff    time.Duration
	cacheSvc   cache.CacheService
	cacheTTL   time.Duration
	log        *logger.Logger
}

// NewClient creates an unlocker client from the application configuration.
// cacheSvc may be nil; responses are then never cached.
func NewClient(cfg *config.Config, cacheSvc cache.CacheService) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		apiURL:     cfg.UnlockerAPIURL,
		token:      cfg.UnlockerToken,
		zone:       cfg.UnlockerZone,
		country:    cfg.UnlockerCountry,
		retries:    cfg.FetchRetries,
		backoff:    cfg.FetchBackoff,
		cacheSvc:   cacheSvc,
		cacheTTL:   cfg.CacheTTL,
		log:        logger.ForUnlocker(),
	}
}

// Fetch retrieves the raw HTML of targetURL. After exhausting retries it
// returns a network-typed CrawlerError; the caller treats that as "no data
// for this keyword", never as a reason to abort the batch.
func (c *Client) Fetch(ctx context.Context, targetURL string) (io.Reader, error) {
	if c.cacheSvc != nil {
		if body, err := c.cacheSvc.Get(cacheKey(targetURL)); err == nil {
			c.log.Debug().Str("url", targetURL).Msg("cache hit")
			return bytes.NewReader(body), nil
		}
	}

	payload, err := json.Marshal(unlockerRequest{
		Zone:    c.zone,
		URL:     targetURL,
		Method:  "GET",
		Format:  "raw",
		Country: c.country,
		Headers: targetHeaders,
	})
	if err != nil {
		return nil, errors.NewNetwork("", "failed to encode unlocker payload", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		body, err := c.doRequest(ctx, payload)
		if err == nil {
			if c.cacheSvc != nil {
				if cacheErr := c.cacheSvc.Set(cacheKey(targetURL), body, c.cacheTTL); cacheErr != nil {
					c.log.Warn().Err(cacheErr).Msg("failed to cache response")
				}
			}
			return bytes.NewReader(body), nil
		}

		if !retryable(err) {
			return nil, err
		}

		lastErr = err
		c.log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("retries", c.retries).
			Str("url", targetURL).
			Msg("unlocker request delayed")

		if attempt < c.retries {
			select {
			case <-time.After(c.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, errors.NewNetwork("", "fetch canceled", ctx.Err())
			}
		}
	}

	return nil, lastErr
}

// doRequest performs a single unlocker API call and returns the UTF-8 body
func (c *Client) doRequest(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewNetwork("", "failed to create unlocker request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetwork("", "unlocker request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// API-side rejection (bad token, blocked target): retrying won't help
		return nil, errors.New(errors.ErrorTypeConfiguration, "",
			fmt.Sprintf("unlocker returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetwork("", "failed to read unlocker response", err)
	}

	return toUTF8(body, resp.Header.Get("Content-Type"))
}

// toUTF8 converts a response body to UTF-8 based on detected encoding
func toUTF8(body []byte, contentType string) ([]byte, error) {
	encoding, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || name == "UTF-8" {
		return body, nil
	}

	decoded, err := io.ReadAll(encoding.NewDecoder().Reader(bytes.NewReader(body)))
	if err != nil {
		return nil, errors.NewNetwork("", "failed to decode response body", err)
	}
	return decoded, nil
}

func retryable(err error) bool {
	if cerr, ok := err.(*errors.CrawlerError); ok {
		return cerr.IsRetryable()
	}
	return false
}

// cacheKey hashes the target URL into a memcache-safe key
func cacheKey(targetURL string) string {
	sum := md5.Sum([]byte(targetURL))
	return "html:" + hex.EncodeToString(sum[:])
}

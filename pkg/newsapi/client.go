// Package newsapi is a client of the polled article and statistics endpoints
package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/newspulse/pkg/domain"
)

// defaults applied by New
const (
	DefaultTimeout       = 15 * time.Second
	DefaultRetryAttempts = 3
	DefaultLimit         = 50
)

const maxBodySize = 8 * 1024 * 1024

// ArticleCleaner normalizes polled articles
type ArticleCleaner interface {
	Articles(list []domain.Article) []domain.Article
}

// Params defines client configuration
type Params struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	Limit         int            // page size used when the filter has none
	Cleaner       ArticleCleaner // optional
	HTTPClient    *http.Client   // optional
}

// Client fetches polled articles and dashboard stats
type Client struct {
	baseURL  string
	attempts int
	limit    int
	cleaner  ArticleCleaner
	http     *http.Client
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// envelope is the wrapped response shape, {success, data, error}
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// New makes a client, zero params replaced by defaults
func New(p Params) *Client {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.RetryAttempts <= 0 {
		p.RetryAttempts = DefaultRetryAttempts
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.HTTPClient == nil {
		p.HTTPClient = &http.Client{Timeout: p.Timeout}
	}
	return &Client{
		baseURL:  strings.TrimSuffix(p.BaseURL, "/"),
		attempts: p.RetryAttempts,
		limit:    p.Limit,
		cleaner:  p.Cleaner,
		http:     p.HTTPClient,
	}
}

// Articles fetches the article page for the filter. Government-only filters use the dedicated path,
// the search term is not sent and applied to the result instead.
func (c *Client) Articles(ctx context.Context, f domain.Filter) ([]domain.Article, error) {
	path := "/api/articles"
	if f.GovernmentOnly {
		path = "/api/articles/government/"
	}

	q := url.Values{}
	for k, v := range map[string]string{"category": f.Category, "region": f.Region,
		"sentiment": f.Sentiment, "language": f.Language} {
		if v != "" {
			q.Set(k, v)
		}
	}
	limit := f.Limit
	if limit <= 0 {
		limit = c.limit
	}
	q.Set("limit", strconv.Itoa(limit))
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}

	data, err := c.get(ctx, path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("get articles: %w", err)
	}

	var articles []domain.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	if c.cleaner != nil {
		articles = c.cleaner.Articles(articles)
	}

	if f.Search != "" {
		res := make([]domain.Article, 0, len(articles))
		for _, a := range articles {
			if domain.MatchSearch(a, f.Search) {
				res = append(res, a)
			}
		}
		articles = res
	}
	lgr.Printf("[DEBUG] polled %d articles for %+v", len(articles), f)
	return articles, nil
}

// DashboardStats fetches aggregate statistics
func (c *Client) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	data, err := c.get(ctx, "/api/dashboard/stats")
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("get dashboard stats: %w", err)
	}
	var st domain.DashboardStats
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("decode dashboard stats: %w", err)
	}
	return st, nil
}

// get requests the path with retries and returns the unwrapped payload.
// Client errors (4xx) are final, everything else is retried.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	var finalErr error

	retrier := repeater.NewBackoff(c.attempts, 200*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		data, err := c.fetch(ctx, path)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 {
				finalErr = err
				return nil
			}
			lgr.Printf("[DEBUG] request %s failed, %v", path, err)
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	if finalErr != nil {
		return nil, finalErr
	}
	return unwrap(body)
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("make request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}

// unwrap returns the payload of {success, data} envelopes or the body itself for bare responses
func unwrap(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response")
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Success == nil && env.Data == nil {
		return trimmed, nil // bare object
	}
	if env.Success != nil && !*env.Success {
		if env.Error == "" {
			env.Error = "request failed"
		}
		return nil, errors.New(env.Error)
	}
	if len(env.Data) == 0 {
		return []byte("null"), nil
	}
	return env.Data, nil
}

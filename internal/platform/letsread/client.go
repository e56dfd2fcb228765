// Package letsread is a client for the Let's Read catalog API.
package letsread

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

// ErrInvalidPayload is returned when a response decodes but misses required fields.
var ErrInvalidPayload = errors.New("letsread: invalid payload")

type Options struct {
	BaseURL    string
	LanguageID string
	PageSize   int
	UserAgent  string
	RPS        float64
	// MaxRetries is the number of extra attempts for transport errors, 429 and 5xx.
	// Zero fails on the first error.
	MaxRetries int
}

type Client struct {
	httpClient *http.Client
	opts       Options
	limiter    *rate.Limiter
	validate   *validator.Validate
	backoff    func(attempt int) time.Duration
}

func NewClient(opts Options) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Limit(opts.RPS), 1),
		validate: validator.New(),
		backoff: func(attempt int) time.Duration {
			// 1s, 2s, 4s...
			return time.Duration(1<<uint(attempt-1)) * time.Second
		},
	}
}

// CatalogPage fetches one page of the catalog at cursor.
func (c *Client) CatalogPage(ctx context.Context, cursor string) (*CatalogPage, error) {
	q := url.Values{}
	q.Set("searchText", "")
	q.Set("lId", c.opts.LanguageID)
	q.Set("limit", fmt.Sprint(c.opts.PageSize))
	q.Set("cursor", cursor)
	u := fmt.Sprintf("%s/api/book/elastic/search/?%s", c.opts.BaseURL, q.Encode())

	var res CatalogPage
	if err := c.get(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("catalog page at cursor %q: %w", cursor, err)
	}
	return &res, nil
}

// BookDetail fetches the full preview of one book.
func (c *Client) BookDetail(ctx context.Context, bookID string) (*BookDetail, error) {
	u := fmt.Sprintf("%s/api/v5/book/preview/language/%s/book/%s",
		c.opts.BaseURL, url.PathEscape(c.opts.LanguageID), url.PathEscape(bookID))

	var res BookDetail
	if err := c.get(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("book detail %s: %w", bookID, err)
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.opts.MaxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(c.backoff(i)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		body, retryable, err := c.fetch(ctx, url)
		if err != nil {
			if !retryable {
				return err
			}
			lastErr = err
			continue
		}

		if err := json.Unmarshal(body, target); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if err := c.validate.Struct(target); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return nil
	}
	if c.opts.MaxRetries == 0 {
		return lastErr
	}
	return fmt.Errorf("after %d retries: %w", c.opts.MaxRetries, lastErr)
}

func (c *Client) fetch(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		return nil, resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500, err
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}
	return body, false, nil
}

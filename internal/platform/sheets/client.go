package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client fetches published sheet CSV over HTTP with retries, since the
// publish endpoint intermittently returns transient errors.
type Client struct {
	http *resty.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetRetryCount(3).
			SetRetryWaitTime(500 * time.Millisecond),
	}
}

// Fetch downloads the sheet at rawURL, converting Google Sheets links to
// their CSV export form first.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	csvURL := ConvertToCSVURL(rawURL)

	resp, err := c.http.R().SetContext(ctx).Get(csvURL)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch sheet: unexpected status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

package slots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"swdb/internal/httpx"
)

// Client fetches slot data from the external CCDB service. Failures are
// surfaced directly to the caller; there is no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a slot-data client with a fixed request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the slot data matching the given name filter and returns
// the upstream body verbatim
func (c *Client) Fetch(ctx context.Context, name string) ([]byte, *httpx.AppError) {
	if c.baseURL == "" {
		return nil, httpx.ErrExternalError("slot data source not configured", nil)
	}

	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	endpoint := c.baseURL + "/slots"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, httpx.ErrInternalError("failed to build slot request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, httpx.ErrExternalTimeout("slot data source timed out", err)
		}
		return nil, httpx.ErrExternalError("slot data source unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpx.ErrExternalError(
			fmt.Sprintf("slot data source returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httpx.ErrExternalError("failed to read slot data", err)
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

package cas

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client validates CAS 2.0 service tickets against an external SSO server.
type Client struct {
	baseURL    string
	serviceURL string
	httpClient *http.Client
}

// NewClient creates a CAS client. timeout bounds the whole validation
// round-trip.
func NewClient(baseURL, serviceURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceURL: serviceURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LoginURL returns the CAS login page URL to redirect anonymous users to
func (c *Client) LoginURL() string {
	return c.baseURL + "/login?service=" + url.QueryEscape(c.serviceURL)
}

// serviceResponse mirrors the CAS 2.0 serviceValidate XML body
type serviceResponse struct {
	XMLName xml.Name `xml:"serviceResponse"`
	Success *struct {
		User string `xml:"user"`
	} `xml:"authenticationSuccess"`
	Failure *struct {
		Code    string `xml:"code,attr"`
		Message string `xml:",chardata"`
	} `xml:"authenticationFailure"`
}

// ValidateTicket validates a service ticket and returns the asserted
// username. A rejected ticket is an error; the caller maps it to 401.
func (c *Client) ValidateTicket(ctx context.Context, ticket string) (string, error) {
	q := url.Values{}
	q.Set("ticket", ticket)
	q.Set("service", c.serviceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/serviceValidate?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build validate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("CAS validate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("CAS validate returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read CAS response: %w", err)
	}

	return ParseValidateResponse(body)
}

// ParseValidateResponse parses a CAS 2.0 serviceValidate XML body
func ParseValidateResponse(body []byte) (string, error) {
	var sr serviceResponse
	if err := xml.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("failed to parse CAS response: %w", err)
	}

	if sr.Failure != nil {
		return "", fmt.Errorf("CAS rejected ticket: %s", sr.Failure.Code)
	}
	if sr.Success == nil || sr.Success.User == "" {
		return "", fmt.Errorf("CAS response missing authentication result")
	}
	return sr.Success.User, nil
}

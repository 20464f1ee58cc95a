// Package nasa is a small client for the Mars rover photos API.
package nasa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultSol is used when a caller does not name a sol.
const DefaultSol = 1000

// ErrUpstreamStatus is returned by Photos when the upstream answers with a
// non-2xx status.
var ErrUpstreamStatus = errors.New("upstream returned an error status")

// Client builds upstream requests and injects the API key. The key never
// leaves the server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a Client. A nil httpClient uses a client without a
// timeout.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// PhotosURL returns the upstream URL for a rover and sol. The rover name and
// sol are passed through unvalidated.
func (c *Client) PhotosURL(rover, sol string) string {
	q := url.Values{}
	q.Set("sol", sol)
	q.Set("api_key", c.apiKey)
	return fmt.Sprintf("%s/rovers/%s/photos?%s", c.baseURL, url.PathEscape(rover), q.Encode())
}

// Raw fetches the upstream body for rover and sol. The body is returned as
// received; status is the upstream HTTP status. Only transport and read
// failures are errors.
func (c *Client) Raw(ctx context.Context, rover, sol string) (body []byte, status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PhotosURL(rover, sol), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading upstream response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// Photos fetches and decodes the photos for rover and sol.
func (c *Client) Photos(ctx context.Context, rover string, sol int) ([]Photo, error) {
	body, status, err := c.Raw(ctx, rover, strconv.Itoa(sol))
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: %d: %s", ErrUpstreamStatus, status, truncate(body, 200))
	}

	var resp PhotosResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding upstream response: %w", err)
	}
	return resp.Photos, nil
}

// Download streams the image at src into w.
func (c *Client) Download(ctx context.Context, src string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return 0, fmt.Errorf("creating image request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("copying image: %w", err)
	}
	return n, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

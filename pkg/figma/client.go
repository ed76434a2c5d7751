// Package figma fetches documents from the Figma REST API and adapts them
// into the design-tool-style payloads the importer converts.
package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	figmaAPIBase = "https://api.figma.com/v1"
	maxRetries   = 3
)

// Client is a Figma API client with retry logic and transport settings
// suited to large files.
type Client struct {
	accessToken string
	baseURL     string
	retryDelay  time.Duration
	httpClient  *http.Client
	retryClient *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRetryDelay sets the base delay between attempts. Attempt n waits n
// times the delay. Default is 2s.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Figma API client with the provided personal access token.
// The default transport pools connections, disables HTTP/2 (for large file
// stability) and allows 10 minutes per request.
//
// Up to maxRetries attempts are made per request; transport errors, 429 and
// 5xx responses are retried with a linearly growing delay.
func NewClient(accessToken string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     figmaAPIBase,
		retryDelay:  2 * time.Second,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = c.httpClient
	rc.RetryMax = maxRetries - 1
	rc.RetryWaitMin = c.retryDelay
	rc.RetryWaitMax = c.retryDelay
	rc.Backoff = retryablehttp.LinearJitterBackoff
	// The last response is inspected below instead of a generic "giving up" error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	c.retryClient = rc

	return c
}

var fileKeyPattern = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$|\?|#)`)

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
func ExtractFileKey(figmaURL string) (string, error) {
	matches := fileKeyPattern.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}

	return matches[1], nil
}

var (
	nodeIDQuery    = regexp.MustCompile(`[?&]node-id=([^&#]*)`)
	nodeIDFragment = regexp.MustCompile(`#([0-9]+[:-][0-9]+(?:\s*,\s*[0-9]+[:-][0-9]+)*)$`)
	nodeIDPath     = regexp.MustCompile(`/nodes/([^?#]+)`)
)

// ExtractNodeIDs returns the node IDs referenced by a Figma URL, from the
// node-id query parameter, a #id fragment or a /nodes/ path segment.
// IDs are normalized to the API form ("123:456"; URLs often carry
// "123-456") and deduplicated. A URL without node IDs yields an empty slice.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	var raw string

	switch {
	case nodeIDQuery.MatchString(figmaURL):
		raw = nodeIDQuery.FindStringSubmatch(figmaURL)[1]
		unescaped, err := url.QueryUnescape(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid node-id parameter %q: %w", raw, err)
		}
		raw = unescaped
	case nodeIDFragment.MatchString(figmaURL):
		raw = nodeIDFragment.FindStringSubmatch(figmaURL)[1]
	case nodeIDPath.MatchString(figmaURL):
		raw = nodeIDPath.FindStringSubmatch(figmaURL)[1]
	}

	ids := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		ids = append(ids, strings.ReplaceAll(id, "-", ":"))
	}

	return deduplicateNodeIDs(ids), nil
}

// deduplicateNodeIDs removes repeated IDs, keeping the first occurrence.
func deduplicateNodeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}

	return result
}

// GetFile retrieves the complete document of a file.
func (c *Client) GetFile(ctx context.Context, fileKey string) (*FileResponse, error) {
	var fileResp FileResponse
	if err := c.get(ctx, "/files/"+url.PathEscape(fileKey), nil, &fileResp); err != nil {
		return nil, err
	}
	return &fileResp, nil
}

// GetFileNodes retrieves the subtrees of specific nodes of a file.
func (c *Client) GetFileNodes(ctx context.Context, fileKey string, nodeIDs []string) (*NodesResponse, error) {
	if len(nodeIDs) == 0 {
		return nil, fmt.Errorf("no node IDs given")
	}

	query := url.Values{"ids": {strings.Join(nodeIDs, ",")}}

	var nodesResp NodesResponse
	if err := c.get(ctx, "/files/"+url.PathEscape(fileKey)+"/nodes", query, &nodesResp); err != nil {
		return nil, err
	}
	return &nodesResp, nil
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Figma-Token", c.accessToken)
	// Disable HTTP/2 to avoid stream errors with large files
	req.Header.Set("Connection", "close")

	resp, err := c.retryClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request canceled: %w", ctxErr)
		}
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Package waykit is a client for Mapbox-compatible directions and
// map-matching services. It models trip requests as typed options,
// serializes them to the wire query format, and decodes the JSON
// responses into typed routes, matchings, and waypoints.
package waykit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Version is reported in the User-Agent header of outgoing requests.
const Version = "0.3.0"

// DefaultBaseURL is the API root used when ClientConfig leaves BaseURL
// empty.
const DefaultBaseURL = "https://api.mapbox.com"

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the API root, without a trailing slash. Empty selects
	// DefaultBaseURL.
	BaseURL string

	// AccessToken, when set, is appended to every request as the last
	// query parameter.
	AccessToken string

	// UserAgent overrides the default "waykit/<version>" header value.
	UserAgent string

	// HTTPClient issues the requests when set. Transport concerns such
	// as pooling, caching, and retry policy belong to it, not to this
	// package.
	HTTPClient *http.Client

	// Logger receives debug logs of outgoing requests.
	Logger *slog.Logger
}

// Client issues directions and map-matching requests. It is stateless
// apart from its HTTP client and safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a client for the configured service.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.AccessToken,
		userAgent:  cfg.UserAgent,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = "waykit/" + Version
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Routes asks the service for itineraries through the options' waypoints.
func (c *Client) Routes(ctx context.Context, opts *RouteOptions) (*RouteResponse, error) {
	var resp RouteResponse
	if err := c.get(ctx, opts.AbridgedPath(), opts.coordinateValues(), opts.URLQueryItems(), &resp); err != nil {
		return nil, err
	}
	if resp.Code != "Ok" {
		return nil, &APIError{StatusCode: http.StatusOK, Code: resp.Code, Message: resp.Message}
	}
	return &resp, nil
}

// Match asks the service to match the options' location trace onto the
// road network.
func (c *Client) Match(ctx context.Context, opts *MatchOptions) (*MatchResponse, error) {
	var resp MatchResponse
	if err := c.get(ctx, opts.AbridgedPath(), opts.coordinateValues(), opts.URLQueryItems(), &resp); err != nil {
		return nil, err
	}
	if resp.Code != "Ok" {
		return nil, &APIError{StatusCode: http.StatusOK, Code: resp.Code, Message: resp.Message}
	}
	return &resp, nil
}

// get issues one request and decodes the 200 body into out.
func (c *Client) get(ctx context.Context, abridgedPath, coordinates string, items []QueryItem, out any) error {
	if c.token != "" {
		items = append(items, QueryItem{Name: "access_token", Value: c.token})
	}
	requestURL := fmt.Sprintf("%s/%s/%s.json?%s", c.baseURL, abridgedPath, coordinates, encodeQueryItems(items))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("routing request",
		"path", abridgedPath,
		"waypoints", strings.Count(coordinates, ";")+1)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("routing request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return apiErrorFromBody(res.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiErrorFromBody shapes a non-200 reply into an APIError, keeping
// whatever code and message the body carried.
func apiErrorFromBody(status int, body []byte) error {
	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &envelope)
	return &APIError{StatusCode: status, Code: envelope.Code, Message: envelope.Message}
}

// encodeQueryItems renders the items in their given order, escaping names
// and values.
func encodeQueryItems(items []QueryItem) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(item.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(item.Value))
	}
	return b.String()
}

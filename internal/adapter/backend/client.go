package backend

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/port"
)

const (
	tracerName        = "github.com/eeese/showcase/internal/adapter/backend"
	defaultRetryAfter = 30 * time.Second
	maxErrorBody      = 4 << 10
)

// Client is the HTTP client for the society backend
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
	tracer     trace.Tracer
}

// Ensure Client implements port.BackendClient
var _ port.BackendClient = (*Client)(nil)

// ClientConfig contains optional client configuration
type ClientConfig struct {
	Timeout       time.Duration // Total request timeout (default: 30s)
	SkipTLSVerify bool
	UserAgent     string
}

// NewClient creates a backend client rooted at baseURL
func NewClient(baseURL string, cfg *ClientConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		cfg = &ClientConfig{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", baseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "showcase"
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		userAgent: userAgent,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}, nil
}

// Projects lists every project
func (c *Client) Projects(ctx context.Context) ([]domain.Project, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "backend.projects", "projects", nil, &raw); err != nil {
		return nil, err
	}
	return decodeProjects(jsonItems(raw), c.logger), nil
}

// ProjectsByCategory lists the projects of one category
func (c *Client) ProjectsByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error) {
	query := url.Values{"category": {category.String()}}

	var raw []json.RawMessage
	if err := c.getJSON(ctx, "backend.projects_by_category", "projects", query, &raw); err != nil {
		return nil, err
	}
	return decodeProjects(jsonItems(raw), c.logger), nil
}

// Project fetches one project
func (c *Client) Project(ctx context.Context, id string) (domain.Project, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "backend.project", "projects/"+url.PathEscape(id), nil, &raw); err != nil {
		return domain.Project{}, err
	}
	return decodeProject(jsonItem(raw))
}

// Events lists every event
func (c *Client) Events(ctx context.Context) ([]domain.Event, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "backend.events", "events", nil, &raw); err != nil {
		return nil, err
	}
	return decodeEvents(jsonItems(raw), c.logger), nil
}

// Event fetches one event
func (c *Client) Event(ctx context.Context, id string) (domain.Event, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "backend.event", "events/"+url.PathEscape(id), nil, &raw); err != nil {
		return domain.Event{}, err
	}
	return decodeEvent(jsonItem(raw))
}

// buildURL builds the full URL for a backend path. path must already be escaped.
func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// getJSON performs a GET request and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, spanName, path string, query url.Values, out any) (err error) {
	urlStr := c.buildURL(path, query)

	ctx, span := c.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodGet),
			attribute.String("url.full", urlStr),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.Debug("backend request",
		zap.String("url", urlStr),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if err := statusError(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError maps non-2xx responses to domain errors
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return domain.NewRetryableError(apiErr, parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()))
	default:
		return apiErr
	}
}

// parseRetryAfter accepts delay-seconds or an HTTP date
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultRetryAfter
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
		return 0
	}
	return defaultRetryAfter
}

// IsAPIError reports whether err carries a backend status error
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

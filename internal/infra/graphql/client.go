// Package graphql fetches Relay connections from a GraphQL endpoint over HTTP.
//
// Client implements repository.ConnectionRepository. Each fetch is rate
// limited, retried on transient failures and guarded by a circuit breaker.
// Responses are validated against the connection shape before they reach
// the cache.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"relaypager/internal/common/pagination"
	"relaypager/internal/config"
	"relaypager/internal/domain/entity"
	"relaypager/internal/observability/logging"
	"relaypager/internal/observability/metrics"
	"relaypager/internal/observability/tracing"
	"relaypager/internal/resilience/circuitbreaker"
	"relaypager/internal/resilience/retry"
)

const defaultMaxResponseBytes = 10 << 20

// Config configures a Client.
type Config struct {
	Endpoint   string
	Field      string   // Dotted path of the connection field
	NodeFields []string // Node fields besides id
	Headers    map[string]string
	FormErrors bool // Select formErrors on the connection

	Timeout          time.Duration
	MaxResponseBytes int64

	RequestsPerSecond float64 // Zero disables rate limiting
	Burst             int

	Retry   retry.Config
	Breaker circuitbreaker.Config

	// HTTPClient is used when set; its transport is wrapped for tracing.
	HTTPClient *http.Client
}

// ConfigFromTransport converts environment transport settings.
func ConfigFromTransport(tc *config.TransportConfig) Config {
	return Config{
		Endpoint:          tc.Endpoint,
		Field:             tc.Field,
		NodeFields:        tc.NodeFields,
		Headers:           tc.Headers,
		FormErrors:        tc.FormErrors,
		Timeout:           tc.Timeout,
		MaxResponseBytes:  tc.MaxResponseBytes,
		RequestsPerSecond: tc.RateLimit.RequestsPerSecond,
		Burst:             tc.RateLimit.Burst,
		Retry:             tc.RetryPolicy(),
		Breaker:           tc.BreakerPolicy(),
	}
}

// Client fetches one connection field.
type Client struct {
	endpoint string
	field    string
	headers  map[string]string
	maxBytes int64

	builder *queryBuilder
	http    *http.Client
	limiter *RateLimiter
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
}

// NewClient creates a client for cfg.Field at cfg.Endpoint.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("graphql: endpoint is required")
	}
	builder, err := newQueryBuilder(cfg.Field, cfg.NodeFields, cfg.FormErrors)
	if err != nil {
		return nil, fmt.Errorf("graphql: %w", err)
	}

	hc := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		hc = &copied
		if hc.Timeout == 0 {
			hc.Timeout = cfg.Timeout
		}
	}
	hc.Transport = tracing.NewTransport(hc.Transport)

	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = defaultMaxResponseBytes
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = circuitbreaker.GraphQLConfig()
	}
	// Only transport failures say anything about the endpoint's health.
	cfg.Breaker.IsSuccessful = func(err error) bool {
		var te *TransportError
		return err == nil || !errors.As(err, &te)
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.GraphQLConfig()
	}
	field := cfg.Field
	onRetry := cfg.Retry.OnRetry
	cfg.Retry.OnRetry = func(attempt int, err error) {
		metrics.RecordRetry(field)
		if onRetry != nil {
			onRetry(attempt, err)
		}
	}

	return &Client{
		endpoint: cfg.Endpoint,
		field:    cfg.Field,
		headers:  cfg.Headers,
		maxBytes: cfg.MaxResponseBytes,
		builder:  builder,
		http:     hc,
		limiter:  NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		breaker:  circuitbreaker.New(cfg.Breaker),
		retry:    cfg.Retry,
	}, nil
}

// FetchConnection queries the connection with q and returns the decoded page.
//
// Errors:
//   - *TransportError: network failure, non-2xx status or open circuit
//   - *GraphQLError: the response carried an errors array
//   - *SchemaError: the data does not have the shape of a connection
func (c *Client) FetchConnection(ctx context.Context, q pagination.QueryParams) (*entity.Connection, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "graphql.FetchConnection")
	defer span.End()
	span.SetAttributes(
		attribute.String("graphql.field", c.field),
		attribute.Int("pagination.first", q.First),
		attribute.String("pagination.after", q.After),
		attribute.String("pagination.order_by", q.OrderBy),
		attribute.Int("pagination.page_size", q.PageSize),
	)

	doc, err := c.builder.Build(q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("graphql: build query: %w", err)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("graphql: encode query: %w", err)
	}

	conn, err := retry.Do(ctx, c.retry, func() (*entity.Connection, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		return circuitbreaker.Do(c.breaker, func() (*entity.Connection, error) {
			return c.fetchOnce(ctx, body, q.PageSize > 0)
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.FromContext(ctx).Warn("graphql circuit breaker rejected request",
				slog.String("circuit", c.breaker.Name()),
				slog.String("state", c.breaker.State().String()))
			err = &TransportError{Op: "circuit", Err: err}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("pagination.edges", len(conn.Edges)))
	return conn, nil
}

// Health reports the circuit breaker guarding the endpoint.
func (c *Client) Health() (name string, state gobreaker.State) {
	return c.breaker.Name(), c.breaker.State()
}

// fetchOnce performs one round trip without retry or circuit breaker.
func (c *Client) fetchOnce(ctx context.Context, body []byte, paged bool) (*entity.Connection, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if id := logging.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordTransportRequest(c.field, "network", time.Since(start))
		return nil, &TransportError{Op: "post", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	// Limit body size to prevent memory exhaustion
	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		metrics.RecordTransportRequest(c.field, "network", time.Since(start))
		return nil, &TransportError{Op: "read", StatusCode: resp.StatusCode, Err: err}
	}
	metrics.RecordResponseSize(c.field, len(raw))
	if int64(len(raw)) > c.maxBytes {
		metrics.RecordTransportRequest(c.field, "too_large", time.Since(start))
		return nil, &TransportError{Op: "read", StatusCode: resp.StatusCode,
			Err: fmt.Errorf("response exceeds %d bytes", c.maxBytes)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordTransportRequest(c.field, strconv.Itoa(resp.StatusCode), time.Since(start))
		return nil, &TransportError{Op: "post", StatusCode: resp.StatusCode, Err: &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    snippet(raw),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}}
	}

	var wire wireResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		metrics.RecordTransportRequest(c.field, "schema", time.Since(start))
		return nil, &SchemaError{Field: c.field, Err: fmt.Errorf("decode body: %w", err)}
	}
	if len(wire.Errors) > 0 {
		metrics.RecordTransportRequest(c.field, "graphql", time.Since(start))
		msgs := make([]string, len(wire.Errors))
		for i, e := range wire.Errors {
			msgs[i] = e.Message
		}
		return nil, &GraphQLError{Messages: msgs}
	}

	conn, err := c.decodeConnection(wire.Data, paged)
	if err != nil {
		metrics.RecordTransportRequest(c.field, "schema", time.Since(start))
		return nil, err
	}
	metrics.RecordTransportRequest(c.field, strconv.Itoa(resp.StatusCode), time.Since(start))
	return conn, nil
}

func (c *Client) decodeConnection(data json.RawMessage, paged bool) (*entity.Connection, error) {
	raw, err := locate(data, c.builder.path)
	if err != nil {
		return nil, &SchemaError{Field: c.field, Err: err}
	}
	var wc wireConnection
	if err := json.Unmarshal(raw, &wc); err != nil {
		return nil, &SchemaError{Field: c.field, Err: fmt.Errorf("decode connection: %w", err)}
	}
	conn, err := toConnection(&wc, paged)
	if err != nil {
		return nil, &SchemaError{Field: c.field, Err: err}
	}
	return conn, nil
}

// parseRetryAfter accepts delay-seconds or an HTTP date. Returns zero when
// absent or unparseable.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// Package config loads the settings of the pager: the GraphQL transport from
// environment variables and table definitions from YAML files.
package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"relaypager/internal/resilience/circuitbreaker"
	"relaypager/internal/resilience/retry"
	envconfig "relaypager/pkg/config"
)

// TransportConfig holds configuration for the GraphQL connection endpoint.
type TransportConfig struct {
	// Endpoint is the GraphQL HTTP endpoint.
	// Default: "http://localhost:8000/graphql"
	Endpoint string

	// Field is the dotted path of the connection field from the query root,
	// e.g. "viewer.people". Default: "items"
	Field string

	// NodeFields are the node fields requested besides id. A "pk" field feeds
	// the sequential key used by infinite scroll. Default: ["pk"]
	NodeFields []string

	// Headers are sent with every request (authorization, tenancy).
	Headers map[string]string

	// Timeout bounds a single HTTP round trip. Default: 10s
	Timeout time.Duration

	// MaxResponseBytes caps the decoded body. Default: 10 MiB
	MaxResponseBytes int64

	// FormErrors requests the formErrors field alongside the connection.
	// Default: false
	FormErrors bool

	RateLimit      RateLimitConfig
	Retry          RetryConfig
	CircuitBreaker CircuitBreakerConfig
}

// RateLimitConfig is the client-side token bucket in front of the endpoint.
type RateLimitConfig struct {
	// RequestsPerSecond, zero disables limiting. Default: 10
	RequestsPerSecond float64
	// Burst is the bucket size. Default: 5
	Burst int
}

// RetryConfig controls retries of transient transport failures.
type RetryConfig struct {
	// MaxAttempts including the first one. Default: 3
	MaxAttempts int
	// InitialDelay before the first retry. Default: 200ms
	InitialDelay time.Duration
	// MaxDelay caps the backoff. Default: 2s
	MaxDelay time.Duration
}

// CircuitBreakerConfig for endpoint resilience.
type CircuitBreakerConfig struct {
	// MaxRequests in half-open state.
	MaxRequests uint32

	// Interval for clearing failure counts.
	Interval time.Duration

	// Timeout before transitioning from open to half-open.
	Timeout time.Duration

	// FailureThreshold ratio to trip circuit (0.0 to 1.0).
	FailureThreshold float64

	// MinRequests before calculating failure ratio.
	MinRequests uint32
}

var graphQLName = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// LoadTransportConfig loads transport configuration from environment variables.
// Returns a config with defaults if environment variables are not set.
func LoadTransportConfig() (*TransportConfig, error) {
	rd := retry.GraphQLConfig()
	cb := circuitbreaker.GraphQLConfig()

	config := &TransportConfig{
		Endpoint:         envconfig.GetEnvString("PAGER_ENDPOINT", "http://localhost:8000/graphql"),
		Field:            envconfig.GetEnvString("PAGER_FIELD", "items"),
		NodeFields:       envconfig.GetEnvStringList("PAGER_NODE_FIELDS", []string{"pk"}),
		Headers:          envconfig.GetEnvStringMap("PAGER_HEADERS"),
		Timeout:          envconfig.GetEnvDuration("PAGER_TIMEOUT", 10*time.Second),
		MaxResponseBytes: int64(envconfig.GetEnvInt("PAGER_MAX_RESPONSE_BYTES", 10<<20)),
		FormErrors:       envconfig.GetEnvBool("PAGER_FORM_ERRORS", false),
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envconfig.GetEnvFloat("PAGER_RATE_LIMIT", 10),
			Burst:             envconfig.GetEnvInt("PAGER_RATE_BURST", 5),
		},
		Retry: RetryConfig{
			MaxAttempts:  envconfig.GetEnvInt("PAGER_RETRY_MAX_ATTEMPTS", rd.MaxAttempts),
			InitialDelay: envconfig.GetEnvDuration("PAGER_RETRY_INITIAL_DELAY", rd.InitialDelay),
			MaxDelay:     envconfig.GetEnvDuration("PAGER_RETRY_MAX_DELAY", rd.MaxDelay),
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests:      uint32(envconfig.GetEnvInt("PAGER_CB_MAX_REQUESTS", int(cb.MaxRequests))),
			Interval:         envconfig.GetEnvDuration("PAGER_CB_INTERVAL", cb.Interval),
			Timeout:          envconfig.GetEnvDuration("PAGER_CB_TIMEOUT", cb.Timeout),
			FailureThreshold: envconfig.GetEnvFloat("PAGER_CB_FAILURE_THRESHOLD", cb.FailureThreshold),
			MinRequests:      uint32(envconfig.GetEnvInt("PAGER_CB_MIN_REQUESTS", int(cb.MinRequests))),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transport configuration: %w", err)
	}

	return config, nil
}

// Validate checks configuration correctness.
func (c *TransportConfig) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("PAGER_ENDPOINT must be an absolute http(s) URL, got %q", c.Endpoint)
	}

	if c.Field == "" {
		return fmt.Errorf("PAGER_FIELD cannot be empty")
	}
	for _, seg := range strings.Split(c.Field, ".") {
		if !graphQLName.MatchString(seg) {
			return fmt.Errorf("PAGER_FIELD segment %q is not a GraphQL name", seg)
		}
	}

	for _, f := range c.NodeFields {
		if !graphQLName.MatchString(f) {
			return fmt.Errorf("PAGER_NODE_FIELDS entry %q is not a GraphQL name", f)
		}
	}

	if err := envconfig.ValidateDurationRange(c.Timeout, 100*time.Millisecond, 5*time.Minute); err != nil {
		return fmt.Errorf("PAGER_TIMEOUT: %w", err)
	}

	if c.MaxResponseBytes <= 0 {
		return fmt.Errorf("PAGER_MAX_RESPONSE_BYTES must be positive")
	}

	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("PAGER_RATE_LIMIT must be non-negative")
	}

	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("PAGER_RATE_BURST must be positive when rate limiting is enabled")
	}

	if c.Retry.MaxAttempts < 1 || c.Retry.MaxAttempts > 10 {
		return fmt.Errorf("PAGER_RETRY_MAX_ATTEMPTS must be between 1 and 10")
	}

	if err := envconfig.ValidatePositiveDuration(c.Retry.InitialDelay); err != nil {
		return fmt.Errorf("PAGER_RETRY_INITIAL_DELAY: %w", err)
	}

	if c.Retry.MaxDelay < c.Retry.InitialDelay {
		return fmt.Errorf("PAGER_RETRY_MAX_DELAY must not be below PAGER_RETRY_INITIAL_DELAY")
	}

	if c.CircuitBreaker.MaxRequests == 0 {
		return fmt.Errorf("PAGER_CB_MAX_REQUESTS must be positive")
	}

	if c.CircuitBreaker.Interval <= 0 {
		return fmt.Errorf("PAGER_CB_INTERVAL must be positive")
	}

	if c.CircuitBreaker.Timeout <= 0 {
		return fmt.Errorf("PAGER_CB_TIMEOUT must be positive")
	}

	if c.CircuitBreaker.FailureThreshold <= 0 || c.CircuitBreaker.FailureThreshold > 1 {
		return fmt.Errorf("PAGER_CB_FAILURE_THRESHOLD must be in (0.0, 1.0]")
	}

	return nil
}

// RetryPolicy returns the retry configuration for the transport.
func (c *TransportConfig) RetryPolicy() retry.Config {
	rc := retry.GraphQLConfig()
	rc.MaxAttempts = c.Retry.MaxAttempts
	rc.InitialDelay = c.Retry.InitialDelay
	rc.MaxDelay = c.Retry.MaxDelay
	return rc
}

// BreakerPolicy returns the circuit breaker configuration for the transport.
func (c *TransportConfig) BreakerPolicy() circuitbreaker.Config {
	bc := circuitbreaker.GraphQLConfig()
	bc.MaxRequests = c.CircuitBreaker.MaxRequests
	bc.Interval = c.CircuitBreaker.Interval
	bc.Timeout = c.CircuitBreaker.Timeout
	bc.FailureThreshold = c.CircuitBreaker.FailureThreshold
	bc.MinRequests = c.CircuitBreaker.MinRequests
	return bc
}

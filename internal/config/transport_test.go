package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTransportConfig_Defaults(t *testing.T) {
	clearPagerEnvVars(t)

	config, err := LoadTransportConfig()
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "http://localhost:8000/graphql", config.Endpoint)
	assert.Equal(t, "items", config.Field)
	assert.Equal(t, []string{"pk"}, config.NodeFields)
	assert.Nil(t, config.Headers)
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, int64(10<<20), config.MaxResponseBytes)
	assert.False(t, config.FormErrors)

	assert.Equal(t, 10.0, config.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, config.RateLimit.Burst)

	assert.Equal(t, 3, config.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, config.Retry.InitialDelay)
	assert.Equal(t, 2*time.Second, config.Retry.MaxDelay)

	assert.Equal(t, uint32(2), config.CircuitBreaker.MaxRequests)
	assert.Equal(t, 30*time.Second, config.CircuitBreaker.Interval)
	assert.Equal(t, 15*time.Second, config.CircuitBreaker.Timeout)
	assert.Equal(t, 0.6, config.CircuitBreaker.FailureThreshold)
	assert.Equal(t, uint32(5), config.CircuitBreaker.MinRequests)
}

func TestLoadTransportConfig_CustomValues(t *testing.T) {
	clearPagerEnvVars(t)

	t.Setenv("PAGER_ENDPOINT", "https://api.example.com/graphql")
	t.Setenv("PAGER_FIELD", "viewer.people")
	t.Setenv("PAGER_NODE_FIELDS", "pk, name, age")
	t.Setenv("PAGER_HEADERS", "Authorization=Bearer abc")
	t.Setenv("PAGER_TIMEOUT", "3s")
	t.Setenv("PAGER_FORM_ERRORS", "true")
	t.Setenv("PAGER_RATE_LIMIT", "0")
	t.Setenv("PAGER_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("PAGER_RETRY_INITIAL_DELAY", "50ms")
	t.Setenv("PAGER_RETRY_MAX_DELAY", "1s")
	t.Setenv("PAGER_CB_MAX_REQUESTS", "4")
	t.Setenv("PAGER_CB_TIMEOUT", "1m")
	t.Setenv("PAGER_CB_FAILURE_THRESHOLD", "0.5")

	config, err := LoadTransportConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/graphql", config.Endpoint)
	assert.Equal(t, "viewer.people", config.Field)
	assert.Equal(t, []string{"pk", "name", "age"}, config.NodeFields)
	assert.Equal(t, map[string]string{"Authorization": "Bearer abc"}, config.Headers)
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.True(t, config.FormErrors)
	assert.Zero(t, config.RateLimit.RequestsPerSecond)

	rc := config.RetryPolicy()
	assert.Equal(t, 5, rc.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, rc.InitialDelay)
	assert.Equal(t, time.Second, rc.MaxDelay)

	bc := config.BreakerPolicy()
	assert.Equal(t, "graphql", bc.Name)
	assert.Equal(t, uint32(4), bc.MaxRequests)
	assert.Equal(t, time.Minute, bc.Timeout)
	assert.Equal(t, 0.5, bc.FailureThreshold)
}

func TestTransportConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modifyFn    func(*TransportConfig)
		expectedErr string
	}{
		{
			name:        "relative endpoint",
			modifyFn:    func(c *TransportConfig) { c.Endpoint = "/graphql" },
			expectedErr: "PAGER_ENDPOINT must be an absolute http(s) URL",
		},
		{
			name:        "unsupported scheme",
			modifyFn:    func(c *TransportConfig) { c.Endpoint = "ftp://example.com/graphql" },
			expectedErr: "PAGER_ENDPOINT must be an absolute http(s) URL",
		},
		{
			name:        "empty field",
			modifyFn:    func(c *TransportConfig) { c.Field = "" },
			expectedErr: "PAGER_FIELD cannot be empty",
		},
		{
			name:        "bad field segment",
			modifyFn:    func(c *TransportConfig) { c.Field = "viewer..people" },
			expectedErr: "PAGER_FIELD segment",
		},
		{
			name:        "bad node field",
			modifyFn:    func(c *TransportConfig) { c.NodeFields = []string{"first-name"} },
			expectedErr: "PAGER_NODE_FIELDS entry",
		},
		{
			name:        "timeout too short",
			modifyFn:    func(c *TransportConfig) { c.Timeout = time.Millisecond },
			expectedErr: "PAGER_TIMEOUT",
		},
		{
			name:        "burst missing",
			modifyFn:    func(c *TransportConfig) { c.RateLimit.Burst = 0 },
			expectedErr: "PAGER_RATE_BURST must be positive",
		},
		{
			name:        "too many attempts",
			modifyFn:    func(c *TransportConfig) { c.Retry.MaxAttempts = 11 },
			expectedErr: "PAGER_RETRY_MAX_ATTEMPTS must be between 1 and 10",
		},
		{
			name:        "max delay below initial",
			modifyFn:    func(c *TransportConfig) { c.Retry.MaxDelay = time.Millisecond },
			expectedErr: "PAGER_RETRY_MAX_DELAY",
		},
		{
			name:        "zero half-open requests",
			modifyFn:    func(c *TransportConfig) { c.CircuitBreaker.MaxRequests = 0 },
			expectedErr: "PAGER_CB_MAX_REQUESTS must be positive",
		},
		{
			name:        "threshold above one",
			modifyFn:    func(c *TransportConfig) { c.CircuitBreaker.FailureThreshold = 1.5 },
			expectedErr: "PAGER_CB_FAILURE_THRESHOLD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTransportConfig()
			tt.modifyFn(config)

			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestTransportConfig_Validate_RateLimitDisabled(t *testing.T) {
	config := validTransportConfig()
	config.RateLimit = RateLimitConfig{}
	assert.NoError(t, config.Validate())
}

func TestLoadTransportConfig_InvalidEnv(t *testing.T) {
	clearPagerEnvVars(t)
	t.Setenv("PAGER_ENDPOINT", "not a url")

	config, err := LoadTransportConfig()
	assert.Nil(t, config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transport configuration")
}

func clearPagerEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"PAGER_ENDPOINT",
		"PAGER_FIELD",
		"PAGER_NODE_FIELDS",
		"PAGER_HEADERS",
		"PAGER_TIMEOUT",
		"PAGER_MAX_RESPONSE_BYTES",
		"PAGER_FORM_ERRORS",
		"PAGER_RATE_LIMIT",
		"PAGER_RATE_BURST",
		"PAGER_RETRY_MAX_ATTEMPTS",
		"PAGER_RETRY_INITIAL_DELAY",
		"PAGER_RETRY_MAX_DELAY",
		"PAGER_CB_MAX_REQUESTS",
		"PAGER_CB_INTERVAL",
		"PAGER_CB_TIMEOUT",
		"PAGER_CB_FAILURE_THRESHOLD",
		"PAGER_CB_MIN_REQUESTS",
	}
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func validTransportConfig() *TransportConfig {
	return &TransportConfig{
		Endpoint:         "http://localhost:8000/graphql",
		Field:            "items",
		NodeFields:       []string{"pk"},
		Timeout:          10 * time.Second,
		MaxResponseBytes: 1 << 20,
		RateLimit:        RateLimitConfig{RequestsPerSecond: 10, Burst: 5},
		Retry: RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests:      2,
			Interval:         30 * time.Second,
			Timeout:          15 * time.Second,
			FailureThreshold: 0.6,
			MinRequests:      5,
		},
	}
}

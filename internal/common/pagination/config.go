// Package pagination holds the client-side rules for cursor pagination:
// offset to cursor translation, page windows, sort keys and the
// UI-local pagination state that drives every fetch.
package pagination

import (
	"fmt"

	envconfig "relaypager/pkg/config"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
type Config struct {
	DefaultPageSize int     // Items per page on mount (typically 10)
	MaxPageSize     int     // Largest page size a user may select (typically 100)
	AroundRadius    int     // Pages shown either side of the current page (typically 2)
	ScrollThreshold float64 // Distance from the bottom that triggers a prefetch
	MinKey          int64   // First sequential key of an infinitely scrolled set
	StrictCursors   bool    // Panic on undecodable cursors instead of failing the fetch
}

// DefaultConfig returns the default pagination configuration.
// Default values: page size=10, max=100, radius=2, threshold=200, min key=1
func DefaultConfig() Config {
	return Config{
		DefaultPageSize: 10,
		MaxPageSize:     100,
		AroundRadius:    2,
		ScrollThreshold: 200,
		MinKey:          1,
		StrictCursors:   false,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_PAGE_SIZE: Items per page on mount
//   - PAGINATION_MAX_PAGE_SIZE: Largest selectable page size
//   - PAGINATION_AROUND_RADIUS: Pages either side of the current page
//   - PAGINATION_SCROLL_THRESHOLD: Prefetch distance from the bottom
//   - PAGINATION_STRICT_CURSORS: Panic on undecodable cursors
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	d := DefaultConfig()
	return Config{
		DefaultPageSize: envconfig.GetEnvInt("PAGINATION_DEFAULT_PAGE_SIZE", d.DefaultPageSize),
		MaxPageSize:     envconfig.GetEnvInt("PAGINATION_MAX_PAGE_SIZE", d.MaxPageSize),
		AroundRadius:    envconfig.GetEnvInt("PAGINATION_AROUND_RADIUS", d.AroundRadius),
		ScrollThreshold: envconfig.GetEnvFloat("PAGINATION_SCROLL_THRESHOLD", d.ScrollThreshold),
		MinKey:          d.MinKey,
		StrictCursors:   envconfig.GetEnvBool("PAGINATION_STRICT_CURSORS", d.StrictCursors),
	}
}

// Validate checks configuration correctness.
func (c Config) Validate() error {
	if c.MaxPageSize < 1 {
		return fmt.Errorf("max page size must be positive, got %d", c.MaxPageSize)
	}
	if c.DefaultPageSize < 1 || c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default page size must be between 1 and %d, got %d", c.MaxPageSize, c.DefaultPageSize)
	}
	if c.AroundRadius < 0 {
		return fmt.Errorf("around radius must be non-negative, got %d", c.AroundRadius)
	}
	if c.ScrollThreshold < 0 {
		return fmt.Errorf("scroll threshold must be non-negative, got %v", c.ScrollThreshold)
	}
	return nil
}

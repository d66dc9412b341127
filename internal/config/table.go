package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"relaypager/internal/common/pagination"
)

// TableConfig describes a paginated table: the connection field it reads,
// its columns and the ordering it starts with.
type TableConfig struct {
	Table struct {
		Field        string   `yaml:"field"`
		PageSize     int      `yaml:"page_size"`
		Columns      []Column `yaml:"columns"`
		DefaultOrder string   `yaml:"default_order"`
		Filters      []string `yaml:"filters"`
	} `yaml:"table"`
}

// Column is one table column. Only columns with an OrderKey can be ordered.
type Column struct {
	Label    string `yaml:"label"`
	DataKey  string `yaml:"data_key"`
	OrderKey string `yaml:"order_key"`
}

// LoadTableConfig loads a table definition from a YAML file.
// The path parameter is expected to come from a trusted source (command-line argument or hardcoded default).
func LoadTableConfig(path string) (*TableConfig, error) {
	// #nosec G304 -- path is provided by trusted source (CLI arg or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}
	return ParseTableConfig(data)
}

// ParseTableConfig decodes and validates a YAML table definition.
func ParseTableConfig(data []byte) (*TableConfig, error) {
	var config TableConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}

	if err := validateTableConfig(&config); err != nil {
		return nil, fmt.Errorf("table validation failed: %w", err)
	}

	return &config, nil
}

func validateTableConfig(config *TableConfig) error {
	t := &config.Table
	if t.Field == "" {
		return fmt.Errorf("field is required")
	}

	if t.PageSize < 0 {
		return fmt.Errorf("page_size must be non-negative")
	}

	if len(t.Columns) == 0 {
		return fmt.Errorf("at least one column is required")
	}

	orderKeys := make(map[string]bool)
	for i, c := range t.Columns {
		if c.Label == "" {
			return fmt.Errorf("column %d: label is required", i)
		}
		if !graphQLName.MatchString(c.DataKey) {
			return fmt.Errorf("column %q: data_key %q is not a GraphQL name", c.Label, c.DataKey)
		}
		if c.OrderKey == "" {
			continue
		}
		if orderKeys[c.OrderKey] {
			return fmt.Errorf("column %q: order_key %q is used twice", c.Label, c.OrderKey)
		}
		orderKeys[c.OrderKey] = true
	}

	for _, k := range pagination.ParseOrderBy(t.DefaultOrder) {
		if !orderKeys[k.Field] {
			return fmt.Errorf("default_order on %q: %w", k.Field, pagination.ErrNotOrderable)
		}
	}

	return nil
}

// Orderable returns the order keys of the orderable columns, in column order.
func (c *TableConfig) Orderable() []string {
	var keys []string
	for _, col := range c.Table.Columns {
		if col.OrderKey != "" {
			keys = append(keys, col.OrderKey)
		}
	}
	return keys
}

// DefaultSort returns the initial sort keys, first listed taking precedence.
func (c *TableConfig) DefaultSort() []pagination.SortKey {
	return pagination.ParseOrderBy(c.Table.DefaultOrder)
}

// NodeFields returns the data keys to request for each node, without
// duplicates and without id, which is always requested.
func (c *TableConfig) NodeFields() []string {
	seen := map[string]bool{"id": true}
	var fields []string
	for _, col := range c.Table.Columns {
		if !seen[col.DataKey] {
			seen[col.DataKey] = true
			fields = append(fields, col.DataKey)
		}
	}
	return fields
}

// ColumnFor returns the column ordered by orderKey.
func (c *TableConfig) ColumnFor(orderKey string) (Column, bool) {
	for _, col := range c.Table.Columns {
		if col.OrderKey != "" && col.OrderKey == orderKey {
			return col, true
		}
	}
	return Column{}, false
}

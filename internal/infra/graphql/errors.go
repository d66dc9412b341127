package graphql

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// TransportError is a failure to obtain a GraphQL response: the request could
// not be sent, the server answered with a non-2xx status, or the body could
// not be read.
type TransportError struct {
	Op         string
	StatusCode int // Zero when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graphql %s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("graphql %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// GraphQLError is a response whose errors array was not empty.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// SchemaError is a response that does not have the shape of a connection.
// Err aggregates every violation found.
type SchemaError struct {
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("graphql: %s: unexpected response shape: %v", e.Field, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Violations returns the individual shape violations.
func (e *SchemaError) Violations() []error {
	return multierr.Errors(e.Err)
}

package board

import (
	"fmt"
	"strings"
)

// TransportError is a non-2xx response from the GraphQL endpoint.
// It aborts the run; the status code and body are preserved for the
// diagnostic line.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GraphQL API error: %s (status %d)", e.Body, e.StatusCode)
}

// QueryError is a 2xx response whose payload carries a top-level
// errors list. Callers treat it as a configuration problem (bad org,
// bad project number, insufficient token scopes).
type QueryError struct {
	Messages []string
}

func (e *QueryError) Error() string {
	return "GraphQL query failed: " + strings.Join(e.Messages, "; ")
}

// DecodeError is a 2xx payload whose data section is missing a field
// the query shape requires. Surfaced distinctly so malformed responses
// never turn into nil dereferences.
type DecodeError struct {
	Field string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("GraphQL response missing %s", e.Field)
}

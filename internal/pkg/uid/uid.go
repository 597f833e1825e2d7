// Package uid provides identifier generators used across the application.
package uid

// StringID generates string identifiers (e.g., UUIDs for correlation IDs and
// object keys).
type StringID interface {
	Generate() string
}

// NumberID generates int64 identifiers (e.g., snowflakes for primary keys).
type NumberID interface {
	Generate() int64
}

// Package uid provides the identifier generators used across the service:
// sortable numeric row ids, UUID strings for correlation, and opaque
// high-entropy tokens for credentials handed to clients.
package uid

// NumberID generates unique numeric identifiers (database row ids).
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}

// Package uid provides unique identifier generators behind small interfaces,
// so callers can pick string IDs (UUID, object IDs) or numeric IDs
// (snowflake) without caring about the scheme.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	// Generate returns a new unique string ID.
	Generate() string
}

// NumberID generates unique int64 identifiers.
type NumberID interface {
	// Generate returns a new unique int64 ID.
	Generate() int64
}

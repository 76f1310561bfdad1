package validator

// Validator validates request and domain structs.
type Validator interface {
	// Validate returns an error describing the first set of violations, or
	// nil when data is valid.
	Validate(data any) error
}

package hash

// Hash is the contract for one-way hashing of secrets.
//
// Implementations must be safe for concurrent use; they hold configuration
// only, never per-call state.
type Hash interface {
	// Hash returns the hashed representation of plaintext. For password
	// hashers the output embeds algorithm, parameters, and salt so that
	// Verify needs no side-channel state.
	Hash(plaintext string) ([]byte, error)

	// Verify reports whether plaintext matches hashed. A malformed hashed
	// value yields false, never an error or panic.
	Verify(hashed, plaintext string) bool
}

package hash

// Hash hashes a plaintext string and verifies submissions against a stored
// hash. Verify must be safe against timing attacks.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}

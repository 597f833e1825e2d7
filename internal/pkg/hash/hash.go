package hash

// Hash hashes secrets and verifies plaintext against stored hashes.
//
// Verify must not leak timing information about the stored hash.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}

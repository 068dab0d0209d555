package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher performs one-way password hashing and verification.
//
// Implementations must salt every call so that hashing the same plaintext
// twice yields different outputs, and must compare in constant time.
type PasswordHasher interface {
	// Hash returns the encoded hash of plaintext. The only expected error is
	// [ErrHashingFailure].
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A malformed hash is a
	// mismatch. An empty hash is checked against a dummy hash of the same
	// cost and always reports false.
	Verify(plaintext, hash string) bool
}

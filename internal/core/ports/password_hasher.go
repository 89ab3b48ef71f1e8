package ports

// PasswordHasher is the one-way salted transform applied to account
// passwords. Verify reports a plain mismatch for any comparison failure,
// malformed stored hashes included.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

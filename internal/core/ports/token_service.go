package ports

// TokenClaims are the decoded claims of a verified bearer token.
type TokenClaims struct {
	ID   string
	Role string
}

// TokenService issues and verifies signed, time-bound bearer tokens carrying
// a principal id and role. Verification fails whole: a bad signature,
// malformed payload, or elapsed expiry all yield domain.ErrInvalidToken.
type TokenService interface {
	Issue(id, role string) (string, error)
	Verify(token string) (TokenClaims, error)
}

package ports

// TokenClaims is the decoded content of a verified bearer token.
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenManager issues and verifies signed bearer tokens. Verify fails
// closed: any structural, signature, or expiry defect yields
// domain.ErrInvalidToken, never a partial identity.
type TokenManager interface {
	Issue(userID, role string) (string, error)
	Verify(token string) (*TokenClaims, error)
}

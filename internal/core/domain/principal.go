package domain

// Principal is the authenticated identity attached to a request after the
// auth middleware has verified the token and re-checked the live user
// record. It is derived per request and never persisted.
type Principal struct {
	ID    string
	Email string
	Role  string
}

// PrincipalFromUser builds a Principal from a live user record. The role is
// taken from the record, not from token claims, so a role change takes
// effect on the next request without waiting for token expiry.
func PrincipalFromUser(u *User) Principal {
	return Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

// HasRole reports whether the principal holds one of the given roles.
func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the principal may act on a resource owned by
// ownerID. Admins bypass the ownership check.
func (p Principal) CanAccess(ownerID string) bool {
	return p.Role == RoleAdmin || p.ID == ownerID
}

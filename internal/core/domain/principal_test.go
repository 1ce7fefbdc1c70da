package domain

import "testing"

func TestPrincipal_HasRole(t *testing.T) {
	admin := Principal{ID: "a", Role: RoleAdmin}
	user := Principal{ID: "u", Role: RoleUser}

	if !admin.HasRole(RoleAdmin) {
		t.Fatalf("admin should have admin role")
	}
	if user.HasRole(RoleAdmin) {
		t.Fatalf("user should not have admin role")
	}
	if !user.HasRole(RoleAdmin, RoleUser) {
		t.Fatalf("user should match one of several roles")
	}
	if user.HasRole() {
		t.Fatalf("empty role set should never match")
	}
}

func TestPrincipal_CanAccess(t *testing.T) {
	owner := Principal{ID: "A", Role: RoleUser}
	other := Principal{ID: "A", Role: RoleUser}
	admin := Principal{ID: "X", Role: RoleAdmin}

	if !owner.CanAccess("A") {
		t.Fatalf("owner should access own resource")
	}
	if other.CanAccess("B") {
		t.Fatalf("non-owner user should be denied")
	}
	if !admin.CanAccess("B") {
		t.Fatalf("admin should bypass ownership")
	}
}

func TestPrincipalFromUser(t *testing.T) {
	u := &User{ID: "1", Email: "alice@example.com", Role: RoleUser, Name: "Alice"}
	p := PrincipalFromUser(u)

	if p.ID != "1" || p.Email != "alice@example.com" || p.Role != RoleUser {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleAdmin) || !ValidRole(RoleUser) {
		t.Fatalf("known roles should be valid")
	}
	if ValidRole("superuser") || ValidRole("") {
		t.Fatalf("unknown roles should be invalid")
	}
}

package policy

import (
	"errors"
	"testing"

	"github.com/egxsim/egxsim/internal/identity"
)

func subject(id string, role identity.Role) Subject {
	return Subject{ID: id, Role: role}
}

func TestDecideSelfProtection(t *testing.T) {
	for _, role := range []identity.Role{identity.RoleUser, identity.RoleAdmin, identity.RoleSuperadmin} {
		self := subject("u1", role)
		if err := Decide(self, self, ActionDelete); !errors.Is(err, ErrSelfAction) {
			t.Fatalf("role %s: expected self-delete denial, got %v", role, err)
		}
		if err := Decide(self, self, ActionChangeRole); !errors.Is(err, ErrSelfAction) {
			t.Fatalf("role %s: expected self role-change denial, got %v", role, err)
		}
	}
}

func TestDecideAdminAgainstHigherTiers(t *testing.T) {
	admin := subject("a1", identity.RoleAdmin)
	for _, targetRole := range []identity.Role{identity.RoleAdmin, identity.RoleSuperadmin} {
		target := subject("t1", targetRole)
		for _, action := range []Action{ActionView, ActionUpdate, ActionDelete} {
			if err := Decide(admin, target, action); !errors.Is(err, ErrForbidden) {
				t.Fatalf("admin %s on %s: expected forbidden, got %v", action, targetRole, err)
			}
		}
	}
}

func TestDecideAdminAgainstPlainUser(t *testing.T) {
	admin := subject("a1", identity.RoleAdmin)
	target := subject("t1", identity.RoleUser)
	for _, action := range []Action{ActionView, ActionUpdate, ActionDelete} {
		if err := Decide(admin, target, action); err != nil {
			t.Fatalf("admin %s on user: expected permit, got %v", action, err)
		}
	}
}

func TestDecideSuperadminAgainstSuperadmin(t *testing.T) {
	actor := subject("s1", identity.RoleSuperadmin)
	target := subject("s2", identity.RoleSuperadmin)

	if err := Decide(actor, target, ActionDelete); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected delete denial, got %v", err)
	}
	if err := Decide(actor, target, ActionChangeRole); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected role-change denial, got %v", err)
	}
	// Non-role updates on a peer superadmin are allowed.
	if err := Decide(actor, target, ActionUpdate); err != nil {
		t.Fatalf("expected update permit, got %v", err)
	}
	if err := Decide(actor, target, ActionView); err != nil {
		t.Fatalf("expected view permit, got %v", err)
	}
}

func TestDecidePlainUserDeniedEverything(t *testing.T) {
	user := subject("u1", identity.RoleUser)
	target := subject("u2", identity.RoleUser)
	for _, action := range []Action{ActionView, ActionUpdate, ActionDelete, ActionChangeRole} {
		if err := Decide(user, target, action); !errors.Is(err, ErrForbidden) {
			t.Fatalf("user %s: expected forbidden, got %v", action, err)
		}
	}
}

func TestCanAssignRole(t *testing.T) {
	if err := CanAssignRole(identity.RoleAdmin, identity.RoleSuperadmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin assigning superadmin: expected forbidden, got %v", err)
	}
	if err := CanAssignRole(identity.RoleUser, identity.RoleSuperadmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("user assigning superadmin: expected forbidden, got %v", err)
	}
	if err := CanAssignRole(identity.RoleSuperadmin, identity.RoleSuperadmin); err != nil {
		t.Fatalf("superadmin assigning superadmin: expected permit, got %v", err)
	}
	if err := CanAssignRole(identity.RoleAdmin, identity.RoleAdmin); err != nil {
		t.Fatalf("admin assigning admin is dropped later, not denied: got %v", err)
	}
}

func TestRoleChangeEffective(t *testing.T) {
	if RoleChangeEffective(identity.RoleAdmin) {
		t.Fatal("admin role changes must not take effect")
	}
	if !RoleChangeEffective(identity.RoleSuperadmin) {
		t.Fatal("superadmin role changes must take effect")
	}
}

func TestCanCreateAdmin(t *testing.T) {
	if err := CanCreateAdmin(identity.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin creating admin: expected forbidden, got %v", err)
	}
	if err := CanCreateAdmin(identity.RoleSuperadmin); err != nil {
		t.Fatalf("superadmin creating admin: expected permit, got %v", err)
	}
}

func TestListVisible(t *testing.T) {
	cases := []struct {
		requester identity.Role
		target    identity.Role
		want      bool
	}{
		{identity.RoleSuperadmin, identity.RoleUser, true},
		{identity.RoleSuperadmin, identity.RoleAdmin, true},
		{identity.RoleSuperadmin, identity.RoleSuperadmin, true},
		{identity.RoleAdmin, identity.RoleUser, true},
		{identity.RoleAdmin, identity.RoleAdmin, false},
		// The filter excludes only role=admin; superadmins stay visible.
		{identity.RoleAdmin, identity.RoleSuperadmin, true},
		{identity.RoleUser, identity.RoleUser, false},
	}
	for _, tc := range cases {
		if got := ListVisible(tc.requester, tc.target); got != tc.want {
			t.Fatalf("ListVisible(%s, %s) = %v, want %v", tc.requester, tc.target, got, tc.want)
		}
	}
}

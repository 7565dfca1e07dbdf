// Package policy holds the deterministic permit/deny rules governing which
// role may act on which account. Decisions are pure functions of the
// requester, the target, and the action; rules are evaluated in a fixed
// order and the first match wins.
package policy

import (
	"errors"
	"fmt"

	"github.com/egxsim/egxsim/internal/identity"
)

// Action identifies an operation a requester wants to perform on a target
// account.
type Action string

const (
	ActionView       Action = "view"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionChangeRole Action = "change-role"
)

var (
	// ErrForbidden denies an authenticated requester.
	ErrForbidden = errors.New("forbidden")
	// ErrSelfAction denies an operation a requester attempted against their
	// own account (self-deletion, self role change).
	ErrSelfAction = errors.New("self action not allowed")
)

// Subject is the slice of a user relevant to authorization decisions.
type Subject struct {
	ID   string
	Role identity.Role
}

// SubjectOf extracts the policy-relevant fields of a user.
func SubjectOf(u identity.User) Subject {
	return Subject{ID: u.ID, Role: u.Role}
}

// Decide evaluates whether the requester may perform action on target.
// A nil return means permit. Rule order:
//
//  1. no requester may delete or change the role of their own account
//  2. admins act only on plain users, never on admin or superadmin targets
//  3. superadmins may not delete or demote another superadmin, but may
//     update their non-role fields
//  4. everything else requires at least admin rank
func Decide(requester, target Subject, action Action) error {
	if requester.ID == target.ID {
		switch action {
		case ActionDelete:
			return fmt.Errorf("%w: cannot delete your own account", ErrSelfAction)
		case ActionChangeRole:
			return fmt.Errorf("%w: cannot change your own role", ErrSelfAction)
		}
	}

	switch requester.Role {
	case identity.RoleSuperadmin:
		if target.Role == identity.RoleSuperadmin {
			switch action {
			case ActionDelete:
				return fmt.Errorf("%w: cannot delete other superadmins", ErrForbidden)
			case ActionChangeRole:
				return fmt.Errorf("%w: cannot change superadmin roles", ErrForbidden)
			}
		}
		return nil
	case identity.RoleAdmin:
		if target.Role == identity.RoleAdmin || target.Role == identity.RoleSuperadmin {
			return fmt.Errorf("%w: not authorized to %s this user", ErrForbidden, action)
		}
		return nil
	default:
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
}

// CanAssignRole reports whether the requester may set an account's role to
// newRole. Assigning superadmin is reserved to superadmins; all other role
// changes only take effect for superadmin requesters anyway, so lower-tier
// requesters are denied outright.
func CanAssignRole(requester identity.Role, newRole identity.Role) error {
	if newRole == identity.RoleSuperadmin && requester != identity.RoleSuperadmin {
		return fmt.Errorf("%w: not authorized to assign superadmin role", ErrForbidden)
	}
	return nil
}

// RoleChangeEffective reports whether a requested role change should be
// applied at all. Non-superadmin requesters have the role field silently
// dropped from their patch rather than denied.
func RoleChangeEffective(requester identity.Role) bool {
	return requester == identity.RoleSuperadmin
}

// CanCreateAdmin restricts admin account creation to superadmins.
func CanCreateAdmin(requester identity.Role) error {
	if requester != identity.RoleSuperadmin {
		return fmt.Errorf("%w: superadmin role required", ErrForbidden)
	}
	return nil
}

// ListVisible reports whether a target account appears in listings requested
// by the given role. Superadmins see everyone; admins see every account that
// is not an admin. Superadmin accounts stay visible to admins even though
// Decide denies acting on them.
func ListVisible(requester identity.Role, target identity.Role) bool {
	switch requester {
	case identity.RoleSuperadmin:
		return true
	case identity.RoleAdmin:
		return target != identity.RoleAdmin
	default:
		return false
	}
}

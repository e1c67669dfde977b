// Package authz decides whether a request identity may perform an operation.
//
// Every route is bound to a Requirement through a Policy table. Check is the
// single decision function; it distinguishes a missing identity
// (domain.ErrUnauthorized) from an identity lacking the role
// (domain.ErrForbidden).
package authz

import (
	"strings"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

type kind uint8

const (
	kindNone kind = iota
	kindAnyAuthenticated
	kindRoleIn
)

// Requirement is what a route demands of the caller.
type Requirement struct {
	kind  kind
	roles []domain.Role
}

// None lets anyone through, authenticated or not.
func None() Requirement { return Requirement{kind: kindNone} }

// AnyAuthenticated admits any resolved identity regardless of role.
func AnyAuthenticated() Requirement { return Requirement{kind: kindAnyAuthenticated} }

// RoleIn admits identities holding one of roles.
func RoleIn(roles ...domain.Role) Requirement {
	return Requirement{kind: kindRoleIn, roles: append([]domain.Role(nil), roles...)}
}

// Public reports whether the requirement admits anonymous callers.
func (r Requirement) Public() bool { return r.kind == kindNone }

func (r Requirement) String() string {
	switch r.kind {
	case kindNone:
		return "none"
	case kindAnyAuthenticated:
		return "authenticated"
	}
	names := make([]string, len(r.roles))
	for i, role := range r.roles {
		names[i] = string(role)
	}
	return "role in [" + strings.Join(names, ",") + "]"
}

// Check evaluates req against id. A nil id means the request carried no
// usable credential.
func Check(id *domain.Identity, req Requirement) error {
	if req.kind == kindNone {
		return nil
	}
	if id == nil {
		return domain.ErrUnauthorized
	}
	if req.kind == kindAnyAuthenticated {
		return nil
	}
	if id.HasRole(req.roles...) {
		return nil
	}
	return domain.ErrForbidden
}

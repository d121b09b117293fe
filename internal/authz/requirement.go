// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package authz

import (
	"errors"
	"strings"

	"github.com/retr0h/taskboard/internal/authtoken"
)

// RequirementKind discriminates the Requirement variants.
type RequirementKind int

// Requirement kinds.
const (
	// KindAuthenticated admits any resolved user.
	KindAuthenticated RequirementKind = iota
	// KindRoles admits users whose role is in an explicit list.
	KindRoles
	// KindMinRole admits users at or above a role in the hierarchy.
	KindMinRole
	// KindCapability admits users whose role grants a capability.
	KindCapability
)

// Requirement is the access policy attached to a route.
type Requirement struct {
	Kind       RequirementKind
	Roles      []authtoken.Role
	MinRole    authtoken.Role
	Capability authtoken.Capability
}

// AnyAuthenticated requires only a valid token for an existing user.
func AnyAuthenticated() *Requirement {
	return &Requirement{Kind: KindAuthenticated}
}

// ErrEmptyRoles is returned by Validate for a Roles requirement with no roles.
var ErrEmptyRoles = errors.New("roles requirement lists no roles")

// Roles requires the caller's role to be one of roles exactly. An empty list
// admits nobody and is rejected by Validate.
func Roles(
	roles ...authtoken.Role,
) *Requirement {
	return &Requirement{Kind: KindRoles, Roles: roles}
}

// MinRole requires the caller's role to rank at least role.
func MinRole(
	role authtoken.Role,
) *Requirement {
	return &Requirement{Kind: KindMinRole, MinRole: role}
}

// Capability requires the caller's role to grant c.
func Capability(
	c authtoken.Capability,
) *Requirement {
	return &Requirement{Kind: KindCapability, Capability: c}
}

// Allows reports whether role satisfies the requirement.
func (r Requirement) Allows(
	role authtoken.Role,
) bool {
	switch r.Kind {
	case KindAuthenticated:
		return true
	case KindRoles:
		for _, allowed := range r.Roles {
			if allowed == role {
				return true
			}
		}
		return false
	case KindMinRole:
		return authtoken.HasAtLeastRole(role, r.MinRole)
	case KindCapability:
		return authtoken.HasPermission(role, r.Capability)
	default:
		return false
	}
}

// Validate reports a requirement that can never admit a caller.
func (r Requirement) Validate() error {
	if r.Kind == KindRoles && len(r.Roles) == 0 {
		return ErrEmptyRoles
	}

	return nil
}

// String renders the requirement for route listings.
func (r Requirement) String() string {
	switch r.Kind {
	case KindAuthenticated:
		return "authenticated"
	case KindRoles:
		return "roles(" + strings.Join(authtoken.GenerateAllowedRoles(r.Roles), ",") + ")"
	case KindMinRole:
		return "min_role(" + string(r.MinRole) + ")"
	case KindCapability:
		return "capability(" + r.Capability + ")"
	default:
		return "unknown"
	}
}

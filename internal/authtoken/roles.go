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

package authtoken

import "fmt"

// Role is a user's position in the privilege hierarchy.
type Role string

// Built-in roles.
const (
	RoleUser       Role = "user"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// RoleHierarchy orders roles from least to most privileged.
var RoleHierarchy = []Role{
	RoleUser,
	RoleManager,
	RoleAdmin,
	RoleSuperAdmin,
}

// rank returns the role's position in RoleHierarchy, or -1 if unknown.
func rank(
	role Role,
) int {
	for i, r := range RoleHierarchy {
		if r == role {
			return i
		}
	}

	return -1
}

// HasAtLeastRole reports whether userRole is at or above requiredRole.
// Unknown roles on either side never satisfy the check.
func HasAtLeastRole(
	userRole Role,
	requiredRole Role,
) bool {
	have, want := rank(userRole), rank(requiredRole)
	if have < 0 || want < 0 {
		return false
	}

	return have >= want
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return rank(r) >= 0
}

// ParseRole converts s to a Role, rejecting unknown names.
func ParseRole(
	s string,
) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unsupported role: %s", s)
	}

	return r, nil
}

// GenerateAllowedRoles returns the role names of hierarchy as strings.
func GenerateAllowedRoles(
	hierarchy []Role,
) []string {
	roles := make([]string, 0, len(hierarchy))
	for _, r := range hierarchy {
		roles = append(roles, string(r))
	}

	return roles
}

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

// Capability is a boolean feature flag granted per role, independent of the
// role hierarchy.
type Capability = string

// Capability constants.
const (
	CanManageUsers     Capability = "canManageUsers"
	CanManageProjects  Capability = "canManageProjects"
	CanManageTasks     Capability = "canManageTasks"
	CanViewAllProjects Capability = "canViewAllProjects"
	CanDeleteProjects  Capability = "canDeleteProjects"
	CanAssignTasks     Capability = "canAssignTasks"
	CanDeleteTasks     Capability = "canDeleteTasks"
)

// AllCapabilities is the full set of known capabilities.
var AllCapabilities = []Capability{
	CanManageUsers,
	CanManageProjects,
	CanManageTasks,
	CanViewAllProjects,
	CanDeleteProjects,
	CanAssignTasks,
	CanDeleteTasks,
}

// RolePermissions is the fixed capability table. Capabilities do not follow
// the hierarchy: admin outranks manager yet neither may delete projects.
var RolePermissions = map[Role]map[Capability]bool{
	RoleSuperAdmin: {
		CanManageUsers:     true,
		CanManageProjects:  true,
		CanManageTasks:     true,
		CanViewAllProjects: true,
		CanDeleteProjects:  true,
		CanAssignTasks:     true,
		CanDeleteTasks:     true,
	},
	RoleAdmin: {
		CanManageUsers:     true,
		CanManageProjects:  true,
		CanManageTasks:     true,
		CanViewAllProjects: true,
		CanDeleteProjects:  false,
		CanAssignTasks:     true,
		CanDeleteTasks:     true,
	},
	RoleManager: {
		CanManageUsers:     false,
		CanManageProjects:  true,
		CanManageTasks:     true,
		CanViewAllProjects: true,
		CanDeleteProjects:  false,
		CanAssignTasks:     true,
		CanDeleteTasks:     false,
	},
	RoleUser: {
		CanManageUsers:     false,
		CanManageProjects:  false,
		CanManageTasks:     false,
		CanViewAllProjects: false,
		CanDeleteProjects:  false,
		CanAssignTasks:     false,
		CanDeleteTasks:     false,
	},
}

// HasPermission reports whether role is granted capability. Unknown roles
// and unknown capabilities are never granted.
func HasPermission(
	role Role,
	capability Capability,
) bool {
	return RolePermissions[role][capability]
}

// Capabilities returns the capabilities granted to role, in AllCapabilities order.
func Capabilities(
	role Role,
) []Capability {
	granted := make([]Capability, 0, len(AllCapabilities))
	for _, c := range AllCapabilities {
		if HasPermission(role, c) {
			granted = append(granted, c)
		}
	}

	return granted
}

package roles

import "github.com/dmitrijs2005/gophauth/internal/failure"

// IsPrivilegedOperationAllowed decides whether caller may change (update,
// delete, reset the password of) an identity currently holding target.
// Acting on oneself is always allowed; acting on someone else requires at
// least Admin and a target strictly below the caller.
func IsPrivilegedOperationAllowed(caller Role, actingOnSelf bool, target Role) bool {
	if actingOnSelf {
		return true
	}
	return caller.AtLeast(Admin) && caller.Above(target)
}

// CanAssignRole decides whether caller may move an identity from current to
// requested. Role changes always need Admin, even on oneself, and only a
// SuperAdmin can hand out SuperAdmin.
func CanAssignRole(caller Role, actingOnSelf bool, current, requested Role) bool {
	if !caller.AtLeast(Admin) {
		return false
	}
	if requested == SuperAdmin && caller != SuperAdmin {
		return false
	}
	if !actingOnSelf && !caller.Above(current) {
		return false
	}
	return true
}

// RequirePrivilegedOperation is IsPrivilegedOperationAllowed returning
// InsufficientRole on denial.
func RequirePrivilegedOperation(caller Role, actingOnSelf bool, target Role) error {
	if !IsPrivilegedOperationAllowed(caller, actingOnSelf, target) {
		return failure.InsufficientRole
	}
	return nil
}

// RequireRoleAssignment is CanAssignRole returning InsufficientRole on denial.
func RequireRoleAssignment(caller Role, actingOnSelf bool, current, requested Role) error {
	if !CanAssignRole(caller, actingOnSelf, current, requested) {
		return failure.InsufficientRole
	}
	return nil
}

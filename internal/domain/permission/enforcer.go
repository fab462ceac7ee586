package permission

type PermissionEnforcer interface {
	Enforce(subject, resource, action string) (bool, error)
	AddRoleForUser(userID, role string) error
	// ReplaceRolePolicies drops every policy of role and grants codes instead.
	ReplaceRolePolicies(role string, codes []string) error
	LoadPolicy() error
}

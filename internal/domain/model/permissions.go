package model

// Operation names a protected capability. Every role check in the system goes
// through the single table below; handlers never compare role strings inline.
type Operation string

const (
	OpSubmitRating    Operation = "rating:submit"
	OpViewStoreReport Operation = "store:report"
	OpManageUsers     Operation = "admin:users"
	OpManageStores    Operation = "admin:stores"
	OpViewAdminStats  Operation = "admin:stats"
)

// Exact-role matching, no hierarchy: SYSTEM_ADMIN does not inherit
// STORE_OWNER capabilities and vice versa.
var rolePermissions = map[string]map[Operation]struct{}{
	RoleNormalUser: {
		OpSubmitRating: {},
	},
	RoleStoreOwner: {
		OpViewStoreReport: {},
	},
	RoleSystemAdmin: {
		OpManageUsers:    {},
		OpManageStores:   {},
		OpViewAdminStats: {},
	},
}

func RoleCan(role string, op Operation) bool {
	ops, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}

package domain

// Action names an operation subject to authorization.
type Action string

const (
	ActionReadProduct      Action = "product:read"
	ActionCreateProduct    Action = "product:create"
	ActionUpdateProduct    Action = "product:update"
	ActionDeleteProduct    Action = "product:delete"
	ActionUpdatePermission Action = "user:update_permission"
)

// accessPolicy lists the permissions allowed to perform each action.
// Permissions form a flat set; ordering exists only through this table.
var accessPolicy = map[Action][]Permission{
	ActionReadProduct:      {PermissionWorker, PermissionManager, PermissionAdmin},
	ActionCreateProduct:    {PermissionManager, PermissionAdmin},
	ActionUpdateProduct:    {PermissionManager, PermissionAdmin},
	ActionDeleteProduct:    {PermissionAdmin},
	ActionUpdatePermission: {PermissionAdmin},
}

// Allows reports whether a holder of p may perform a. Unknown actions are
// denied.
func (a Action) Allows(p Permission) bool {
	for _, allowed := range accessPolicy[a] {
		if allowed == p {
			return true
		}
	}
	return false
}

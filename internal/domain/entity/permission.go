package entity

import "slices"

// Permission names a single action on a resource, in "<app>.<action>_<model>" form.
type Permission string

const (
	PermViewBusiness   Permission = "accounts.view_business"
	PermAddBusiness    Permission = "accounts.add_business"
	PermChangeBusiness Permission = "accounts.change_business"
	PermDeleteBusiness Permission = "accounts.delete_business"

	PermViewUser   Permission = "accounts.view_user"
	PermAddUser    Permission = "accounts.add_user"
	PermChangeUser Permission = "accounts.change_user"
	PermDeleteUser Permission = "accounts.delete_user"
)

type permissionSet []Permission

func (s permissionSet) contains(perm Permission) bool {
	return slices.Contains(s, perm)
}

// Adding and deleting businesses is reserved for superusers.
var rolePermissions = map[Role]permissionSet{
	RoleAdmin: {
		PermViewBusiness, PermChangeBusiness,
		PermViewUser, PermAddUser, PermChangeUser, PermDeleteUser,
	},
	RoleOwner: {
		PermViewBusiness, PermChangeBusiness,
		PermViewUser, PermAddUser, PermChangeUser, PermDeleteUser,
	},
	RoleAccountant: {
		PermViewBusiness,
		PermViewUser,
	},
	RoleStaff: {
		PermViewUser,
	},
}

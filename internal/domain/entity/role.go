// Package entity contains the core business objects of the project.
package entity

import (
	"slices"

	"github.com/pkg/errors"
)

// Role represents the type of role a user holds inside their business.
type Role string

const (
	// RoleAdmin manages the business and its accounts.
	RoleAdmin Role = "admin"
	// RoleStaff is the default role of a regular employee.
	RoleStaff Role = "staff"
	// RoleAccountant has read access to business and account data.
	RoleAccountant Role = "accountant"
	// RoleOwner owns the business.
	RoleOwner Role = "owner"
)

// DefaultRole is assigned when an account is created without an explicit role.
const DefaultRole = RoleStaff

// ErrUnknownRole is returned by ParseRole for values outside the enumeration.
var ErrUnknownRole = errors.New("unknown role")

var roleLabels = map[Role]string{
	RoleAdmin:      "Admin",
	RoleStaff:      "Staff",
	RoleAccountant: "Accountant",
	RoleOwner:      "Owner",
}

// AllRoles lists every valid role in declaration order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleStaff, RoleAccountant, RoleOwner}
}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// Label returns the human readable name of the Role.
func (r Role) Label() string {
	return roleLabels[r]
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	return slices.Contains(AllRoles(), r)
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", errors.Wrapf(ErrUnknownRole, "%q", s)
	}

	return role, nil
}

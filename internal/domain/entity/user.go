// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnusablePasswordPrefix marks a password hash that can never be verified.
// Accounts created without a password carry such a hash.
const UnusablePasswordPrefix = "!"

// User is an account. The email address is the sole login identifier and is
// unique across all businesses.
type User struct {
	ID           uuid.UUID  // The Global Unique Identifier (GUID) for the user.
	Email        string     // Normalized email address, used as the login identifier.
	FullName     string     // The user's display name or real name.
	Phone        *string    // Optional contact phone number.
	BusinessID   *uuid.UUID // The tenant this account belongs to. Nil for tenant-less accounts.
	Role         Role       // The user's role inside the business.
	IsActive     bool       // Inactive accounts cannot log in and hold no permissions.
	IsStaff      bool       // Staff accounts may use the admin console.
	IsSuperuser  bool       // Superusers hold every permission.
	DateJoined   time.Time  // When the account was created.
	LastLogin    *time.Time // Last successful login, nil if the user never logged in.
	PasswordHash string     // Hashed credential. Never a plaintext password.
}

// CredentialHolder is implemented by accounts that can authenticate with a password.
type CredentialHolder interface {
	// Username returns the login identifier.
	Username() string

	// HasUsablePassword reports whether the stored credential can ever verify.
	HasUsablePassword() bool
}

// PermissionHolder is implemented by accounts that can be authorized.
type PermissionHolder interface {
	HasPerm(perm Permission) bool
	HasPerms(perms ...Permission) bool
}

var (
	_ CredentialHolder = (*User)(nil)
	_ PermissionHolder = (*User)(nil)
)

// String returns "<full name> (<email>)".
func (u *User) String() string {
	return fmt.Sprintf("%s (%s)", u.FullName, u.Email)
}

// Username returns the email address.
func (u *User) Username() string {
	return u.Email
}

// HasUsablePassword reports whether a real password has been set.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != "" && !strings.HasPrefix(u.PasswordHash, UnusablePasswordPrefix)
}

// IsOwner reports whether the user owns their business.
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsAdmin reports whether the user administers their business.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPerm reports whether the user holds perm. Inactive users hold nothing,
// active superusers hold everything, everyone else gets their role's grants.
func (u *User) HasPerm(perm Permission) bool {
	if !u.IsActive {
		return false
	}
	if u.IsSuperuser {
		return true
	}

	return rolePermissions[u.Role].contains(perm)
}

// HasPerms reports whether the user holds every one of perms.
func (u *User) HasPerms(perms ...Permission) bool {
	for _, perm := range perms {
		if !u.HasPerm(perm) {
			return false
		}
	}

	return true
}

// BelongsTo reports whether the user is a member of the given business.
func (u *User) BelongsTo(businessID uuid.UUID) bool {
	return u.BusinessID != nil && *u.BusinessID == businessID
}

package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUser_RolePredicates(t *testing.T) {
	tests := []struct {
		role      Role
		wantOwner bool
		wantAdmin bool
	}{
		{role: RoleOwner, wantOwner: true},
		{role: RoleAdmin, wantAdmin: true},
		{role: RoleStaff},
		{role: RoleAccountant},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			user := &User{Role: tt.role}
			assert.Equal(t, tt.wantOwner, user.IsOwner())
			assert.Equal(t, tt.wantAdmin, user.IsAdmin())
		})
	}
}

func TestUser_String(t *testing.T) {
	user := &User{FullName: "Jane Doe", Email: "jane@example.com"}
	assert.Equal(t, "Jane Doe (jane@example.com)", user.String())

	business := &Business{Name: "Acme"}
	assert.Equal(t, "Acme", business.String())
}

func TestUser_Credentials(t *testing.T) {
	user := &User{Email: "jane@example.com", PasswordHash: "$2a$10$abcdefghijklmnopqrstuv"}
	assert.Equal(t, "jane@example.com", user.Username())
	assert.True(t, user.HasUsablePassword())

	user.PasswordHash = UnusablePasswordPrefix + "random"
	assert.False(t, user.HasUsablePassword())

	user.PasswordHash = ""
	assert.False(t, user.HasUsablePassword())
}

func TestUser_HasPerm(t *testing.T) {
	t.Run("inactive users hold nothing", func(t *testing.T) {
		user := &User{IsActive: false, IsSuperuser: true, Role: RoleAdmin}
		assert.False(t, user.HasPerm(PermViewUser))
		assert.False(t, user.HasPerms(PermViewUser))
	})

	t.Run("superusers hold everything", func(t *testing.T) {
		user := &User{IsActive: true, IsSuperuser: true, Role: RoleStaff}
		assert.True(t, user.HasPerms(PermAddBusiness, PermDeleteBusiness, PermDeleteUser))
	})

	t.Run("role grants", func(t *testing.T) {
		admin := &User{IsActive: true, Role: RoleAdmin}
		owner := &User{IsActive: true, Role: RoleOwner}
		accountant := &User{IsActive: true, Role: RoleAccountant}
		staff := &User{IsActive: true, Role: RoleStaff}

		for _, u := range []*User{admin, owner} {
			assert.True(t, u.HasPerms(PermViewBusiness, PermChangeBusiness, PermViewUser, PermAddUser, PermChangeUser, PermDeleteUser))
			assert.False(t, u.HasPerm(PermAddBusiness))
			assert.False(t, u.HasPerm(PermDeleteBusiness))
		}

		assert.True(t, accountant.HasPerms(PermViewBusiness, PermViewUser))
		assert.False(t, accountant.HasPerm(PermChangeUser))

		assert.True(t, staff.HasPerm(PermViewUser))
		assert.False(t, staff.HasPerm(PermViewBusiness))
	})
}

func TestUser_BelongsTo(t *testing.T) {
	businessID := uuid.New()
	user := &User{BusinessID: &businessID}

	assert.True(t, user.BelongsTo(businessID))
	assert.False(t, user.BelongsTo(uuid.New()))
	assert.False(t, (&User{}).BelongsTo(businessID))
}

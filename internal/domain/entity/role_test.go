package entity

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_IsValid(t *testing.T) {
	for _, role := range AllRoles() {
		assert.True(t, role.IsValid(), role.String())
	}

	assert.False(t, Role("").IsValid())
	assert.False(t, Role("Admin").IsValid())
	assert.False(t, Role("manager").IsValid())
}

func TestRole_Label(t *testing.T) {
	assert.Equal(t, "Admin", RoleAdmin.Label())
	assert.Equal(t, "Staff", RoleStaff.Label())
	assert.Equal(t, "Accountant", RoleAccountant.Label())
	assert.Equal(t, "Owner", RoleOwner.Label())
	assert.Empty(t, Role("unknown").Label())
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("owner")
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, role)

	_, err = ParseRole("superadmin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRole))
	assert.Contains(t, err.Error(), `"superadmin"`)
}

func TestDefaultRole(t *testing.T) {
	assert.Equal(t, RoleStaff, DefaultRole)
}

package main

import (
	"testing"

	domainerrors "accounts/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuperuserFlags_Input(t *testing.T) {
	t.Setenv(superuserPasswordEnv, "from-env")

	input, err := superuserFlags{email: "root@example.com", fullName: "  Root  ", phone: " 555 "}.input()
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", input.Email)
	assert.Equal(t, "Root", input.FullName)
	assert.Equal(t, "from-env", input.Password)
	require.NotNil(t, input.Extra.Phone)
	assert.Equal(t, "555", *input.Extra.Phone)

	input, err = superuserFlags{email: "root@example.com", password: "flag"}.input()
	require.NoError(t, err)
	assert.Equal(t, "flag", input.Password)
	assert.Nil(t, input.Extra.Phone)
}

func TestSuperuserFlags_InputRejectsBadEmail(t *testing.T) {
	_, err := superuserFlags{email: "root"}.input()
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

package validator

import (
	"testing"

	domainerrors "accounts/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string  `validate:"required,email"`
	Role  *string `validate:"omitempty,role"`
	Name  string  `validate:"max=5"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()
	owner := "owner"

	assert.NoError(t, v.Validate(&sample{Email: "a@example.com", Role: &owner}))
	assert.NoError(t, v.Validate(&sample{Email: "a@example.com"}))

	intern := "intern"
	err := v.Validate(&sample{Email: "nope", Role: &intern, Name: "toolong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "Email must be a valid email address")
	assert.Contains(t, appErr.Details(), "Role must be one of admin, staff, accountant, owner")
	assert.Contains(t, appErr.Details(), "Name must be at most 5 characters")
}

func TestCustomValidator_Var(t *testing.T) {
	v := New()

	assert.NoError(t, v.Var("x@example.com", "required,email"))
	assert.ErrorIs(t, v.Var("x", "email"), domainerrors.ErrValidationFailed)
}

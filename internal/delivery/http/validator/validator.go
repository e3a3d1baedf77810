// Package validator plugs go-playground/validator into echo.
package validator

import (
	"strings"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New returns a validator with the account specific tags registered:
// "role" accepts one of the account roles.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return entity.Role(fl.Field().String()).IsValid()
	})

	return &CustomValidator{validate: validate}
}

// Validate reports every failing field as an ErrValidationFailed with details.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(problems, "; "))
}

// Var validates a single value against tag.
func (cv *CustomValidator) Var(value any, tag string) error {
	if err := cv.validate.Var(value, tag); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "role":
		return field + " must be one of admin, staff, accountant, owner"
	case "uuid":
		return field + " must be a UUID"
	default:
		return field + " failed " + fe.Tag()
	}
}

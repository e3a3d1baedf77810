package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolations_FromSQLState(t *testing.T) {
	wrap := func(code string) error {
		return errors.Wrap(&pgconn.PgError{Code: code, Message: "violation"}, "insert")
	}

	assert.True(t, isUniqueConstraintViolation(wrap(pgUniqueViolation)))
	assert.True(t, isForeignKeyConstraintViolation(wrap(pgForeignKeyViolation)))
	assert.True(t, isNotNullConstraintViolation(wrap(pgNotNullViolation)))
	assert.True(t, isCheckConstraintViolation(wrap(pgCheckViolation)))

	assert.False(t, isUniqueConstraintViolation(wrap(pgForeignKeyViolation)))
	assert.False(t, isForeignKeyConstraintViolation(errors.New("boom")))
	assert.Empty(t, pgErrorCode(errors.New("boom")))
}

func TestConstraintViolations_FromTranslatedErrors(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(errors.WithStack(gorm.ErrDuplicatedKey)))
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))
	assert.False(t, isNotNullConstraintViolation(gorm.ErrDuplicatedKey))
}

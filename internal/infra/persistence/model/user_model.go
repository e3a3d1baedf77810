package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table. business_id references businesses.id and
// is deleted together with its business.
// Boolean columns carry no GORM defaults so an explicit false is always written.
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:varchar(254);uniqueIndex:users_email_key;not null"`
	FullName     string     `gorm:"type:varchar(255);not null"`
	Phone        *string    `gorm:"type:varchar(20)"`
	BusinessID   *uuid.UUID `gorm:"type:uuid;index:idx_users_business_id"`
	Role         string     `gorm:"type:varchar(20);not null"`
	IsActive     bool       `gorm:"not null"`
	IsStaff      bool       `gorm:"not null"`
	IsSuperuser  bool       `gorm:"not null"`
	DateJoined   time.Time  `gorm:"not null"`
	LastLogin    *time.Time
	PasswordHash string `gorm:"type:varchar(128);not null"`

	Business *BusinessModel `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not set one.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}

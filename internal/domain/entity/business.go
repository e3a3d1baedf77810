// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Business is a tenant: an organization that owns a set of user accounts.
// Deleting a Business deletes every User that references it.
type Business struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the business.
	Name      string    // The business's display name.
	Address   string    // Free-form postal address. May be empty.
	CreatedAt time.Time // Set once, when the business is first persisted.
}

// String returns the business name.
func (b *Business) String() string {
	return b.Name
}

package usecase

import (
	"context"
	"time"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the generated access token after a successful login.
type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *entity.User
}

// SessionUsecase authenticates admin console users.
type SessionUsecase interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// ResolveActor loads the account behind a verified token. Only active staff accounts resolve.
	ResolveActor(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RegisterInput carries the fields for creating an account.
type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginInput carries the login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the account shape exposed to clients. The password hash never
// leaves the domain layer.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginOutput is the result of a successful login.
type LoginOutput struct {
	AccessToken string   `json:"accessToken"`
	ExpiresIn   int64    `json:"expiresIn"` // Seconds until the token expires.
	User        UserView `json:"user"`
}

// UserUsecase covers the thin account layer: registration and session login.
// It exists so the "current user identity" collaborator is concrete; real
// identity-provider integration is out of scope.
type UserUsecase interface {
	// Register creates an account with a hashed password.
	Register(ctx context.Context, input *RegisterInput) (*UserView, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}

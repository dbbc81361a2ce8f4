package ports

import (
	"context"

	"github.com/storefront/auth-service/internal/core/domain"
)

// SignupInput is the signup request body.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput is the login request body.
type LoginInput struct {
	Email    string
	Password string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, string, error)
	Login(ctx context.Context, in LoginInput) (*domain.PublicUser, string, error)
}

// Authorizer resolves a bearer token to the identifier of an existing user.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (string, error)
}

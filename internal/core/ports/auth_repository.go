package ports

import (
	"context"

	"github.com/storefront/auth-service/internal/core/domain"
)

// AuthRepository is the user store. Lookups are keyed by the normalized email
// and return domain.ErrUserNotFound on a miss.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

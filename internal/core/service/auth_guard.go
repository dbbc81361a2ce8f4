package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
)

// AuthGuard resolves bearer tokens to user identifiers. The store, not the
// token, decides whether the user exists.
type AuthGuard struct {
	repo    ports.AuthRepository
	tokens  ports.TokenCodec
	metrics ports.AuthMetrics
	logger  zerolog.Logger
}

func NewAuthGuard(repo ports.AuthRepository, tokens ports.TokenCodec, recorder ports.AuthMetrics, logger zerolog.Logger) *AuthGuard {
	if recorder == nil {
		recorder = nopMetrics{}
	}
	return &AuthGuard{repo: repo, tokens: tokens, metrics: recorder, logger: logger}
}

// Authorize returns the identifier of the user named by the token, or
// domain.ErrUnauthorized. Store failures other than a miss are reported as
// domain.ErrInternal.
func (g *AuthGuard) Authorize(ctx context.Context, token string) (string, error) {
	claims, err := g.tokens.Decode(token)
	if err != nil {
		g.metrics.GuardRejected("invalid_token")
		return "", domain.ErrUnauthorized
	}

	user, err := g.repo.FindByEmail(ctx, domain.NormalizeEmail(claims.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			g.metrics.GuardRejected("unknown_user")
			return "", domain.ErrUnauthorized
		}
		g.logger.Error().Err(err).Msg("auth guard: find user")
		return "", domain.ErrInternal
	}
	return user.ID, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
)

// AuthService implements signup and login.
type AuthService struct {
	repo     ports.AuthRepository
	tokens   ports.TokenCodec
	password ports.PasswordScheme
	locker   ports.EmailLocker
	metrics  ports.AuthMetrics
	guests   domain.GuestList
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
	newID    func() string
}

func NewAuthService(
	repo ports.AuthRepository,
	tokens ports.TokenCodec,
	password ports.PasswordScheme,
	locker ports.EmailLocker,
	recorder ports.AuthMetrics,
	guests domain.GuestList,
	logger zerolog.Logger,
) *AuthService {
	if recorder == nil {
		recorder = nopMetrics{}
	}
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		password: password,
		locker:   locker,
		metrics:  recorder,
		guests:   guests,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Signup registers a new account. The returned record still carries its
// stored password; login strips it.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (user *domain.User, token string, err error) {
	defer func() { s.metrics.Signup(outcome(err)) }()
	defer s.recoverInternal("signup", &err)

	if !domain.IsValidEmail(in.Email) {
		return nil, "", domain.ErrInvalidEmailFormat
	}
	if !domain.IsAcceptableSignupPassword(in.Password) {
		return nil, "", domain.ErrWeakPassword
	}
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		return nil, "", domain.ErrMissingFirstName
	}

	email := domain.NormalizeEmail(in.Email)
	unlock, err := s.locker.Lock(ctx, email)
	if err != nil {
		return nil, "", s.internal("signup: lock", err)
	}
	defer unlock()

	_, err = s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Debug().Str("email", email).Msg("signup rejected: email already exists")
		return nil, "", domain.ErrEmailAlreadyExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, "", s.internal("signup: find user", err)
	}

	stored, err := s.password.Prepare(strings.TrimSpace(in.Password))
	if err != nil {
		if errors.Is(err, domain.ErrPasswordTooLong) {
			return nil, "", err
		}
		return nil, "", s.internal("signup: prepare password", err)
	}

	created, err := s.persist(ctx, domain.NewUser(s.newID(), email, stored, firstName, strings.TrimSpace(in.LastName), s.now()))
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, "", err
		}
		return nil, "", s.internal("signup: create user", err)
	}

	token, err = s.tokens.Issue(ports.TokenClaims{ID: created.ID, Email: created.Email})
	if err != nil {
		return nil, "", s.internal("signup: issue token", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user signed up")
	return created, token, nil
}

// Login authenticates an existing account, provisioning guest accounts on
// their first successful attempt.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (user *domain.PublicUser, token string, err error) {
	defer func() { s.metrics.Login(outcome(err)) }()
	defer s.recoverInternal("login", &err)

	if !domain.IsValidEmail(in.Email) {
		return nil, "", domain.ErrInvalidEmailFormat
	}
	if !domain.IsAcceptableLoginPassword(in.Password) {
		return nil, "", domain.ErrMissingPassword
	}

	email := domain.NormalizeEmail(in.Email)
	found, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		guest, ok := s.guests.Match(in.Email, in.Password)
		if !ok {
			s.logger.Debug().Str("email", email).Msg("login rejected: unknown email")
			return nil, "", domain.ErrUnknownEmail
		}
		found, err = s.provisionGuest(ctx, email, in.Password, guest)
		if errors.Is(err, domain.ErrInvalidPassword) {
			return nil, "", err
		}
		if err != nil {
			return nil, "", s.internal("login: provision guest", err)
		}
	case err != nil:
		return nil, "", s.internal("login: find user", err)
	default:
		if !s.password.Compare(found.Password, strings.TrimSpace(in.Password)) {
			s.logger.Debug().Str("user_id", found.ID).Msg("login rejected: invalid password")
			return nil, "", domain.ErrInvalidPassword
		}
	}

	token, err = s.tokens.Issue(ports.TokenClaims{ID: found.ID, Email: found.Email})
	if err != nil {
		return nil, "", s.internal("login: issue token", err)
	}

	s.logger.Info().Str("user_id", found.ID).Msg("user logged in")
	return found.Public(), token, nil
}

// provisionGuest creates the guest's record. When the email was claimed
// while waiting for the lock, the existing record is used if the password
// still matches it.
func (s *AuthService) provisionGuest(ctx context.Context, email, password string, guest domain.GuestIdentity) (*domain.User, error) {
	unlock, err := s.locker.Lock(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lock: %w", err)
	}
	defer unlock()

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if !s.password.Compare(existing.Password, strings.TrimSpace(password)) {
			return nil, domain.ErrInvalidPassword
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	stored, err := s.password.Prepare(strings.TrimSpace(password))
	if err != nil {
		return nil, fmt.Errorf("prepare password: %w", err)
	}

	created, err := s.persist(ctx, domain.NewUser(s.newID(), email, stored, guest.FirstName, guest.LastName, s.now()))
	if err != nil {
		return nil, err
	}

	s.metrics.GuestProvisioned()
	s.logger.Info().Str("user_id", created.ID).Str("email", email).Msg("guest account provisioned")
	return created, nil
}

// persist checks record integrity before handing it to the store.
func (s *AuthService) persist(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.validate.Struct(user); err != nil {
		return nil, fmt.Errorf("invalid user record: %w", err)
	}
	return s.repo.Create(ctx, user)
}

func (s *AuthService) internal(op string, err error) error {
	s.logger.Error().Err(err).Str("op", op).Msg("auth internal failure")
	return domain.ErrInternal
}

func (s *AuthService) recoverInternal(op string, err *error) {
	if r := recover(); r != nil {
		*err = s.internal(op, fmt.Errorf("panic: %v", r))
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInternal):
		return "error"
	default:
		return "rejected"
	}
}

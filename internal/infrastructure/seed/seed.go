// Package seed supplies the guest allow-list and the accounts present when
// the store starts.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
)

// DefaultGuests is used when no guest file is configured. The first entry is
// left out of the seeded users and gets provisioned on its first login.
var DefaultGuests = domain.GuestList{
	{Email: "guest@storefront.dev", Password: "guest123", FirstName: "Guest", LastName: "User"},
	{Email: "ana.lopez@storefront.dev", Password: "ana12345", FirstName: "Ana", LastName: "Lopez"},
	{Email: "carlos.ruiz@storefront.dev", Password: "carlos123", FirstName: "Carlos", LastName: "Ruiz"},
}

// DefaultUsers are always seeded.
var DefaultUsers = domain.GuestList{
	{Email: "jethalal.gada@gmail.com", Password: "babitaji1234", FirstName: "Jethalal", LastName: "Gada"},
}

// LoadGuests reads a JSON array of guest identities from path, or returns
// DefaultGuests when path is empty.
func LoadGuests(path string) (domain.GuestList, error) {
	if path == "" {
		return DefaultGuests, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guest file: %w", err)
	}

	var guests domain.GuestList
	if err := json.Unmarshal(raw, &guests); err != nil {
		return nil, fmt.Errorf("parse guest file: %w", err)
	}
	for i, g := range guests {
		if !domain.IsValidEmail(g.Email) || g.Password == "" || strings.TrimSpace(g.FirstName) == "" {
			return nil, fmt.Errorf("guest[%d]: email, password and firstName are required", i)
		}
	}
	return guests, nil
}

// Apply stores DefaultUsers and every guest but the first. Emails already in
// the store are skipped, so Apply can run on every start.
func Apply(ctx context.Context, repo ports.AuthRepository, scheme ports.PasswordScheme, guests domain.GuestList, log zerolog.Logger) (int, error) {
	entries := append(domain.GuestList{}, DefaultUsers...)
	if len(guests) > 1 {
		entries = append(entries, guests[1:]...)
	}

	now := time.Now().UTC()
	seeded := 0
	for _, e := range entries {
		email := domain.NormalizeEmail(e.Email)

		_, err := repo.FindByEmail(ctx, email)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return seeded, fmt.Errorf("seed %s: %w", email, err)
		}

		stored, err := scheme.Prepare(e.Password)
		if err != nil {
			return seeded, fmt.Errorf("seed %s: %w", email, err)
		}
		user := domain.NewUser(uuid.NewString(), email, stored, e.FirstName, e.LastName, now)
		if _, err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				continue
			}
			return seeded, fmt.Errorf("seed %s: %w", email, err)
		}
		seeded++
	}

	log.Info().Int("seeded", seeded).Int("guests", len(guests)).Msg("user store seeded")
	return seeded, nil
}

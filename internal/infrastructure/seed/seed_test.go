package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
	"github.com/storefront/auth-service/internal/infrastructure/db/memory"
	"github.com/storefront/auth-service/internal/infrastructure/password"
)

func TestLoadGuests_Default(t *testing.T) {
	guests, err := LoadGuests("")
	require.NoError(t, err)
	assert.Equal(t, DefaultGuests, guests)
}

func TestLoadGuests_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guests.json")
	body := `[{"email":"demo@shop.io","password":"demo","firstName":"Demo","lastName":"Shopper"}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	guests, err := LoadGuests(path)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Demo", guests[0].FirstName)
}

func TestLoadGuests_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	_, err := LoadGuests(bad)
	assert.Error(t, err)

	incomplete := filepath.Join(dir, "incomplete.json")
	require.NoError(t, os.WriteFile(incomplete, []byte(`[{"email":"nope","password":"x","firstName":"N"}]`), 0o600))
	_, err = LoadGuests(incomplete)
	assert.Error(t, err)

	_, err = LoadGuests(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestApply_SkipsFirstGuestAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	n, err := Apply(ctx, repo, password.Plain{}, DefaultGuests, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, len(DefaultUsers)+len(DefaultGuests)-1, n)

	_, err = repo.FindByEmail(ctx, DefaultGuests[0].Email)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u, err := repo.FindByEmail(ctx, "jethalal.gada@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "babitaji1234", u.Password)
	assert.Empty(t, u.Cart)

	n, err = Apply(ctx, repo, password.Plain{}, DefaultGuests, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, len(DefaultUsers)+len(DefaultGuests)-1, repo.Len())
}

// lateRepo misses every lookup, so only Create sees the existing records.
type lateRepo struct {
	*memory.UserRepository
}

func (lateRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

var _ ports.AuthRepository = lateRepo{}

func TestApply_CountsOnlyInsertedUsers(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	_, err := Apply(ctx, repo, password.Plain{}, DefaultGuests, zerolog.Nop())
	require.NoError(t, err)
	before := repo.Len()

	n, err := Apply(ctx, lateRepo{repo}, password.Plain{}, DefaultGuests, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, before, repo.Len())
}

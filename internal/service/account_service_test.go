package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/platform/localstore"
	"github.com/roamcar/roamcar/internal/service/auth"
	"github.com/roamcar/roamcar/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type accountFixture struct {
	kv       *localstore.KV
	accounts *localstore.AccountStore
	sessions *localstore.SessionStore
	service  AccountService
}

func newAccountFixture(t *testing.T, dir string) *accountFixture {
	t.Helper()

	kv, err := localstore.OpenKV(dir)
	require.NoError(t, err)
	accounts, err := localstore.NewAccountStore(kv, testLogger())
	require.NoError(t, err)
	sessions := localstore.NewSessionStore(kv, testLogger())

	svc, err := NewAccountService(accounts, sessions, auth.NewBase64Codec(), testLogger())
	require.NoError(t, err)

	return &accountFixture{kv: kv, accounts: accounts, sessions: sessions, service: svc}
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-0101",
		Password: "secret123",
		Role:     domain.RoleAdmin,
	}
}

func TestAccountServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("valid registration establishes the session", func(t *testing.T) {
		f := newAccountFixture(t, t.TempDir())

		user, err := f.service.Register(ctx, validRegistration())
		require.NoError(t, err)

		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, domain.RoleAdmin, user.Role)

		current := f.service.CurrentUser()
		require.NotNil(t, current)
		assert.Equal(t, user.ID, current.ID)
	})

	t.Run("input is normalized before validation", func(t *testing.T) {
		f := newAccountFixture(t, t.TempDir())

		in := validRegistration()
		in.Email = "  Jane@Example.COM "
		in.Phone = " 555-0101 "

		user, err := f.service.Register(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "555-0101", user.Phone)
	})

	t.Run("register then login round-trips", func(t *testing.T) {
		f := newAccountFixture(t, t.TempDir())

		registered, err := f.service.Register(ctx, validRegistration())
		require.NoError(t, err)
		require.NoError(t, f.service.Logout(ctx))

		logged, err := f.service.Login(ctx, "jane@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, logged.ID)
	})

	t.Run("validation failures", func(t *testing.T) {
		f := newAccountFixture(t, t.TempDir())

		tests := []struct {
			name    string
			mutate  func(*RegisterInput)
			wantErr error
		}{
			{"blank name", func(in *RegisterInput) { in.Name = "   " }, domain.ErrNameRequired},
			{"blank email", func(in *RegisterInput) { in.Email = "" }, domain.ErrEmailRequired},
			{"blank phone", func(in *RegisterInput) { in.Phone = " " }, domain.ErrPhoneRequired},
			{"blank password", func(in *RegisterInput) { in.Password = "  " }, domain.ErrPasswordRequired},
			{"short password", func(in *RegisterInput) { in.Password = "12345" }, domain.ErrPasswordTooShort},
			{"malformed email", func(in *RegisterInput) { in.Email = "jane@nodot" }, domain.ErrInvalidEmail},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				in := validRegistration()
				tc.mutate(&in)

				_, err := f.service.Register(ctx, in)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.True(t, IsValidationError(err))
			})
		}

		// No session was established by the failed attempts
		assert.Nil(t, f.service.CurrentUser())
	})

	t.Run("duplicate email differing only by case", func(t *testing.T) {
		f := newAccountFixture(t, t.TempDir())

		_, err := f.service.Register(ctx, validRegistration())
		require.NoError(t, err)
		require.NoError(t, f.service.Logout(ctx))

		in := validRegistration()
		in.Email = "JANE@EXAMPLE.COM"
		in.Phone = "555-9999"

		_, err = f.service.Register(ctx, in)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, IsValidationError(err))
	})

	t.Run("duplicate phone", func(t *testing.T) {
		f := newAccountFixture(t, t.TempDir())

		_, err := f.service.Register(ctx, validRegistration())
		require.NoError(t, err)
		require.NoError(t, f.service.Logout(ctx))

		in := validRegistration()
		in.Email = "other@example.com"

		_, err = f.service.Register(ctx, in)
		assert.ErrorIs(t, err, store.ErrPhoneExists)
	})
}

func TestAccountServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		f := newAccountFixture(t, t.TempDir())

		_, err := f.service.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAccountFixture(t, t.TempDir())
		_, err := f.service.Register(ctx, validRegistration())
		require.NoError(t, err)
		require.NoError(t, f.service.Logout(ctx))

		_, err = f.service.Login(ctx, "jane@example.com", "wrong-password")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.True(t, IsAuthError(err))
		assert.Nil(t, f.service.CurrentUser())
	})

	t.Run("email is normalized on login", func(t *testing.T) {
		f := newAccountFixture(t, t.TempDir())
		_, err := f.service.Register(ctx, validRegistration())
		require.NoError(t, err)
		require.NoError(t, f.service.Logout(ctx))

		user, err := f.service.Login(ctx, "  JANE@example.com ", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
	})
}

func TestAccountServiceLogout(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t, t.TempDir())

	_, err := f.service.Register(ctx, validRegistration())
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx))
	assert.Nil(t, f.service.CurrentUser())

	// Idempotent
	require.NoError(t, f.service.Logout(ctx))
	assert.Nil(t, f.service.CurrentUser())
}

func TestAccountServiceSessionRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("session survives process restart", func(t *testing.T) {
		dir := t.TempDir()

		f := newAccountFixture(t, dir)
		registered, err := f.service.Register(ctx, validRegistration())
		require.NoError(t, err)

		restarted := newAccountFixture(t, dir)
		current := restarted.service.CurrentUser()
		require.NotNil(t, current)
		assert.Equal(t, registered.ID, current.ID)
	})

	t.Run("stale session is cleared", func(t *testing.T) {
		dir := t.TempDir()
		f := newAccountFixture(t, dir)

		// A persisted session pointing at an account that no longer exists
		require.NoError(t, f.sessions.Put(ctx, &domain.SessionUser{
			ID: "user-ghost", Name: "Ghost", Email: "ghost@example.com", Role: domain.RoleUser,
		}))

		restarted := newAccountFixture(t, dir)
		assert.Nil(t, restarted.service.CurrentUser())

		_, err := restarted.sessions.Get(ctx)
		assert.ErrorIs(t, err, store.ErrNotFound, "stale record was cleared")
	})

	t.Run("corrupt session record starts logged out", func(t *testing.T) {
		dir := t.TempDir()

		kv, err := localstore.OpenKV(dir)
		require.NoError(t, err)
		require.NoError(t, kv.Set(localstore.KeySession, []byte(`{"id":`)))

		f := newAccountFixture(t, dir)
		assert.Nil(t, f.service.CurrentUser())
	})
}

func TestAccountServiceSessionChanges(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t, t.TempDir())

	var observed []*domain.SessionUser
	unsubscribe := f.service.SessionChanges().Subscribe(func(u *domain.SessionUser) {
		observed = append(observed, u)
	})
	defer unsubscribe()

	// Replay-latest: the logged-out state arrives immediately
	require.Len(t, observed, 1)
	assert.Nil(t, observed[0])

	user, err := f.service.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.Len(t, observed, 2)
	require.NotNil(t, observed[1])
	assert.Equal(t, user.ID, observed[1].ID)

	require.NoError(t, f.service.Logout(ctx))
	require.Len(t, observed, 3)
	assert.Nil(t, observed[2])
}

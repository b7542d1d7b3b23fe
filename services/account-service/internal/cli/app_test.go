package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/school-site-api/shared/i18n"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
	"github.com/vasapolrittideah/school-site-api/shared/provider/memstore"
)

const testEnrollmentCode = "staff-only"

type console struct {
	app  *App
	out  *bytes.Buffer
	deps usecase.AccountDeps
}

func newBackend() *memstore.Backend {
	return memstore.New(provider.TokenConfig{
		Secret:    "test-secret",
		Issuer:    "school-site",
		ExpiresIn: time.Hour,
	})
}

func newConsole(t *testing.T, backend *memstore.Backend, input string) *console {
	t.Helper()

	out := &bytes.Buffer{}
	deps := usecase.AccountDeps{
		Profiles:            repository.NewProfileRepository(backend.Store()),
		Translator:          i18n.MustNew(i18n.LocaleEnglish),
		AdminEnrollmentCode: testEnrollmentCode,
	}

	app := NewApp(Params{
		Auth:    backend.NewAuth(),
		Account: deps,
		In:      strings.NewReader(input),
		Out:     out,
	})
	t.Cleanup(usecase.ObserveAuthState(context.Background(), app.auth, app.profiles, app.logger, app.setState))

	return &console{app: app, out: out, deps: deps}
}

func TestApp_RegisterAndAdminCommands(t *testing.T) {
	ctx := context.Background()
	backend := newBackend()

	other := usecase.NewAccountUsecase(backend.NewAuth(), usecase.AccountDeps{
		Profiles:   repository.NewProfileRepository(backend.Store()),
		Translator: i18n.MustNew(i18n.LocaleEnglish),
	})
	alice, err := other.Register(ctx, usecase.RegisterParams{
		Email: "a@x.com", Password: "secret1", DisplayName: "Alice",
	})
	require.NoError(t, err)

	stubPassword(t, "secret1")
	c := newConsole(t, backend, "admin@x.com\nAdmin\n"+testEnrollmentCode+"\n")
	assert.Equal(t, "misafir", c.app.status())

	require.NoError(t, c.app.Register(ctx))
	assert.Contains(t, c.out.String(), "Account created successfully.")
	assert.Equal(t, "admin@x.com (admin)", c.app.status())
	assert.True(t, c.app.isSignedIn())

	c.out.Reset()
	require.NoError(t, c.app.Users(ctx))
	assert.Contains(t, c.out.String(), "a@x.com")
	assert.Contains(t, c.out.String(), "admin@x.com")
	assert.Contains(t, c.out.String(), "2 kullanıcı")

	c.out.Reset()
	require.NoError(t, c.app.Role(ctx, []string{alice.User.ID, "moderator"}))
	assert.Contains(t, c.out.String(), "Role updated successfully.")

	c.out.Reset()
	assert.Error(t, c.app.Role(ctx, []string{alice.User.ID, "owner"}))
	assert.Contains(t, c.out.String(), "Hata: Invalid role.")

	c.out.Reset()
	require.NoError(t, c.app.Role(ctx, []string{alice.User.ID}))
	assert.Contains(t, c.out.String(), "Kullanım: role")

	c.out.Reset()
	require.NoError(t, c.app.Ban(ctx, []string{alice.User.ID}, true))
	assert.Contains(t, c.out.String(), "User has been banned.")

	profile, err := c.deps.Profiles.GetProfile(ctx, alice.User.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsBanned)
	assert.Equal(t, "moderator", string(profile.Role))

	c.out.Reset()
	require.NoError(t, c.app.Logout(ctx))
	assert.Contains(t, c.out.String(), "Logged out successfully.")
	assert.Equal(t, "misafir", c.app.status())
	assert.False(t, c.app.isSignedIn())
}

func TestApp_NonAdminIsRefused(t *testing.T) {
	ctx := context.Background()
	backend := newBackend()

	stubPassword(t, "secret1", "wrong-password", "secret1")
	c := newConsole(t, backend, "a@x.com\nAlice\n\na@x.com\na@x.com\n")

	require.NoError(t, c.app.Register(ctx))
	assert.Equal(t, "a@x.com (user)", c.app.status())

	c.out.Reset()
	assert.ErrorIs(t, c.app.Users(ctx), errForbidden)
	assert.Contains(t, c.out.String(), "You are not allowed to do this.")

	require.NoError(t, c.app.Logout(ctx))

	c.out.Reset()
	assert.Error(t, c.app.Login(ctx))
	assert.Contains(t, c.out.String(), "Hata: Wrong password.")
	assert.Equal(t, "misafir", c.app.status())

	c.out.Reset()
	require.NoError(t, c.app.Login(ctx))
	assert.Contains(t, c.out.String(), "Logged in successfully.")
	assert.Equal(t, "a@x.com (user)", c.app.status())

	c.out.Reset()
	require.NoError(t, c.app.WhoAmI(ctx))
	assert.Contains(t, c.out.String(), "a@x.com\tAlice\tuser")
}

func TestApp_SignedOutAdminCommand(t *testing.T) {
	c := newConsole(t, newBackend(), "")

	assert.ErrorIs(t, c.app.Users(context.Background()), errForbidden)
	assert.Contains(t, c.out.String(), "You must be signed in to do this.")

	c.out.Reset()
	require.NoError(t, c.app.WhoAmI(context.Background()))
	assert.Equal(t, "Giriş yapılmadı.\n", c.out.String())
}

func TestApp_Run(t *testing.T) {
	lines := stubPrintln(t)

	c := newConsole(t, newBackend(), "whoami\nexit\n")
	c.app.Run(context.Background())

	assert.Contains(t, c.out.String(), "Giriş yapılmadı.")
	assert.Contains(t, *lines, "okul [misafir]>")
	assert.Contains(t, *lines, "Güle güle!")
}

package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

var testTokenConfig = provider.TokenConfig{
	Secret:    "test-secret",
	Issuer:    "school-site",
	ExpiresIn: time.Hour,
}

type fakeGoogle struct {
	profile *provider.GoogleProfile
	err     error
}

func (f *fakeGoogle) Verify(context.Context, string) (*provider.GoogleProfile, error) {
	return f.profile, f.err
}

type note struct {
	Title  string     `bson:"title"`
	Pinned bool       `bson:"pinned"`
	SeenAt *time.Time `bson:"seenAt"`
}

func TestAuth_CreateUserAndSignIn(t *testing.T) {
	ctx := context.Background()
	backend := New(testTokenConfig)
	auth := backend.NewAuth()

	created, err := auth.CreateUser(ctx, " A@X.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", created.Email)
	assert.NotEmpty(t, created.UID)
	assert.NotEmpty(t, created.IDToken)
	assert.Equal(t, created.UID, auth.CurrentUser().UID)

	_, err = auth.CreateUser(ctx, "a@x.com", "secret1")
	assert.Equal(t, provider.CodeEmailAlreadyInUse, provider.ErrorCode(err))

	require.NoError(t, auth.SignOut(ctx))
	assert.Nil(t, auth.CurrentUser())

	_, err = auth.SignIn(ctx, "a@x.com", "wrong")
	assert.Equal(t, provider.CodeWrongPassword, provider.ErrorCode(err))

	_, err = auth.SignIn(ctx, "nobody@x.com", "secret1")
	assert.Equal(t, provider.CodeUserNotFound, provider.ErrorCode(err))

	signedIn, err := auth.SignIn(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.UID, signedIn.UID)
}

func TestAuth_CreateUserValidation(t *testing.T) {
	ctx := context.Background()
	auth := New(testTokenConfig).NewAuth()

	_, err := auth.CreateUser(ctx, "not-an-email", "secret1")
	assert.Equal(t, provider.CodeInvalidEmail, provider.ErrorCode(err))

	_, err = auth.CreateUser(ctx, "a@x.com", "12345")
	assert.Equal(t, provider.CodeWeakPassword, provider.ErrorCode(err))

	assert.Nil(t, auth.CurrentUser())
}

func TestAuth_DisabledIdentityCannotSignIn(t *testing.T) {
	ctx := context.Background()
	backend := New(testTokenConfig)
	auth := backend.NewAuth()

	created, err := auth.CreateUser(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, auth.SignOut(ctx))

	disabled := true
	require.NoError(t, backend.UpdateIdentity(ctx, created.UID, provider.UpdateIdentityParams{Disabled: &disabled}))

	_, err = auth.SignIn(ctx, "a@x.com", "secret1")
	assert.Equal(t, provider.CodeUserDisabled, provider.ErrorCode(err))
}

func TestAuth_RestoreAndRevoke(t *testing.T) {
	ctx := context.Background()
	backend := New(testTokenConfig)

	first := backend.NewAuth()
	created, err := first.CreateUser(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, first.UpdateProfile(ctx, "Alice"))
	assert.Equal(t, "Alice", first.CurrentUser().DisplayName)

	second := backend.NewAuth()
	restored, err := second.Restore(ctx, created.IDToken)
	require.NoError(t, err)
	assert.Equal(t, created.UID, restored.UID)
	assert.Equal(t, "Alice", restored.DisplayName)

	require.NoError(t, second.SignOut(ctx))

	_, err = backend.NewAuth().Restore(ctx, created.IDToken)
	assert.Equal(t, provider.CodeIDTokenRevoked, provider.ErrorCode(err))

	_, err = backend.NewAuth().Restore(ctx, "garbage")
	assert.Equal(t, provider.CodeInvalidIDToken, provider.ErrorCode(err))
}

func TestAuth_UpdateProfileRequiresSignIn(t *testing.T) {
	err := New(testTokenConfig).NewAuth().UpdateProfile(context.Background(), "Alice")
	assert.Equal(t, provider.CodeNoCurrentUser, provider.ErrorCode(err))
}

func TestAuth_DeleteUserSignsOut(t *testing.T) {
	ctx := context.Background()
	backend := New(testTokenConfig)
	auth := backend.NewAuth()

	created, err := auth.CreateUser(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, auth.DeleteUser(ctx, created.UID))
	assert.Nil(t, auth.CurrentUser())

	_, err = backend.GetIdentityByEmail(ctx, "a@x.com")
	assert.Equal(t, provider.CodeUserNotFound, provider.ErrorCode(err))

	_, err = auth.CreateUser(ctx, "a@x.com", "secret1")
	assert.NoError(t, err)
}

func TestAuth_SignInWithGoogle(t *testing.T) {
	ctx := context.Background()
	google := &fakeGoogle{profile: &provider.GoogleProfile{
		Subject:       "google-sub",
		Email:         "g@x.com",
		EmailVerified: true,
	}}
	backend := New(testTokenConfig, WithGoogleVerifier(google))

	first, err := backend.NewAuth().SignInWithGoogle(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, provider.SignInMethodGoogle, first.SignInMethod)
	assert.True(t, first.EmailVerified)

	again, err := backend.NewAuth().SignInWithGoogle(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, first.UID, again.UID)

	_, err = backend.NewAuth().SignIn(ctx, "g@x.com", "anything")
	assert.Equal(t, provider.CodeWrongPassword, provider.ErrorCode(err))

	_, err = backend.NewAuth().CreateUser(ctx, "p@x.com", "secret1")
	require.NoError(t, err)
	google.profile = &provider.GoogleProfile{Subject: "other", Email: "p@x.com"}

	_, err = backend.NewAuth().SignInWithGoogle(ctx, "token")
	assert.Equal(t, provider.CodeDifferentCredential, provider.ErrorCode(err))

	google.err = errors.New("bad token")
	_, err = backend.NewAuth().SignInWithGoogle(ctx, "token")
	assert.Equal(t, provider.CodeInvalidIDToken, provider.ErrorCode(err))
}

func TestAuth_GoogleNotConfigured(t *testing.T) {
	_, err := New(testTokenConfig).NewAuth().SignInWithGoogle(context.Background(), "token")
	assert.Equal(t, provider.CodeInternal, provider.ErrorCode(err))
}

func TestAuth_StateNotifications(t *testing.T) {
	ctx := context.Background()
	auth := New(testTokenConfig).NewAuth()

	var events []string
	unsubscribe := auth.OnAuthStateChanged(func(identity *provider.Identity) {
		if identity == nil {
			events = append(events, "signed-out")
			return
		}
		events = append(events, identity.Email)
	})
	defer unsubscribe()

	_, err := auth.CreateUser(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, auth.SignOut(ctx))

	assert.Equal(t, []string{"signed-out", "a@x.com", "signed-out"}, events)
}

func TestStore_Documents(t *testing.T) {
	ctx := context.Background()
	store := New(testTokenConfig).Store()

	_, err := store.Get(ctx, "notes", "n1")
	assert.True(t, provider.IsNotFound(err))

	err = store.Update(ctx, "notes", "n1", map[string]any{"pinned": true})
	assert.True(t, provider.IsNotFound(err))

	require.NoError(t, store.Set(ctx, "notes", "n2", note{Title: "second"}))
	require.NoError(t, store.Set(ctx, "notes", "n1", note{Title: "first"}))

	seen := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Update(ctx, "notes", "n1", map[string]any{"pinned": true, "seenAt": seen}))

	snap, err := store.Get(ctx, "notes", "n1")
	require.NoError(t, err)
	var got note
	require.NoError(t, snap.Decode(&got))
	assert.Equal(t, "first", got.Title)
	assert.True(t, got.Pinned)
	require.NotNil(t, got.SeenAt)
	assert.True(t, seen.Equal(*got.SeenAt))

	require.NoError(t, store.Update(ctx, "notes", "n1", map[string]any{"seenAt": nil}))
	snap, err = store.Get(ctx, "notes", "n1")
	require.NoError(t, err)
	got = note{}
	require.NoError(t, snap.Decode(&got))
	assert.Nil(t, got.SeenAt)

	all, err := store.List(ctx, "notes")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "n1", all[0].ID)
	assert.Equal(t, "n2", all[1].ID)

	empty, err := store.List(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

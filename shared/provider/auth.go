package provider

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vasapolrittideah/school-site-api/shared/security"
)

// Authenticator implements Auth on top of an IdentityStore. Adapters hand one
// out per NewAuth call; each keeps its own signed-in identity.
type Authenticator struct {
	state      AuthState
	identities IdentityStore
	tokens     *TokenIssuer
	hasher     *security.PasswordHasher
	google     GoogleVerifier
	validate   *validator.Validate
}

// NewAuthenticator creates an auth handle. google may be nil, in which case
// Google sign-in is rejected.
func NewAuthenticator(
	identities IdentityStore,
	tokens *TokenIssuer,
	hasher *security.PasswordHasher,
	google GoogleVerifier,
) *Authenticator {
	return &Authenticator{
		identities: identities,
		tokens:     tokens,
		hasher:     hasher,
		google:     google,
		validate:   validator.New(),
	}
}

func (a *Authenticator) CreateUser(ctx context.Context, email, password string) (*Identity, error) {
	email = NormalizeEmail(email)
	if err := a.validate.Var(email, "required,email"); err != nil {
		return nil, NewError(CodeInvalidEmail, "the email address is badly formatted")
	}

	if len(password) < MinPasswordLength {
		return nil, NewError(CodeWeakPassword, "password should be at least 6 characters")
	}

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, WrapError(CodeInternal, "failed to hash password", err)
	}

	now := time.Now()
	rec := &IdentityRecord{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		SignInMethod: SignInMethodPassword,
		LastSignInAt: now,
	}

	if err := a.identities.CreateIdentity(ctx, rec); err != nil {
		return nil, err
	}

	return a.signIn(rec)
}

func (a *Authenticator) UpdateProfile(ctx context.Context, displayName string) error {
	current := a.state.CurrentUser()
	if current == nil {
		return NewError(CodeNoCurrentUser, "no user is signed in")
	}

	if err := a.identities.UpdateIdentity(ctx, current.UID, UpdateIdentityParams{
		DisplayName: &displayName,
	}); err != nil {
		return err
	}

	a.state.updateCurrent(func(identity *Identity) {
		if identity.UID == current.UID {
			identity.DisplayName = displayName
		}
	})

	return nil
}

func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	email = NormalizeEmail(email)
	if err := a.validate.Var(email, "required,email"); err != nil {
		return nil, NewError(CodeInvalidEmail, "the email address is badly formatted")
	}

	rec, err := a.identities.GetIdentityByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if rec.PasswordHash == "" {
		return nil, NewError(CodeWrongPassword, "the password is invalid or the user does not have a password")
	}

	ok, err := a.hasher.Verify(password, rec.PasswordHash)
	if err != nil {
		return nil, WrapError(CodeInternal, "failed to verify password", err)
	}
	if !ok {
		return nil, NewError(CodeWrongPassword, "the password is invalid or the user does not have a password")
	}

	if rec.Disabled {
		return nil, NewError(CodeUserDisabled, "the user account has been disabled")
	}

	if err := a.touchSignIn(ctx, rec); err != nil {
		return nil, err
	}

	return a.signIn(rec)
}

func (a *Authenticator) SignInWithGoogle(ctx context.Context, idToken string) (*Identity, error) {
	if a.google == nil {
		return nil, NewError(CodeInternal, "google sign-in is not configured")
	}

	profile, err := a.google.Verify(ctx, idToken)
	if err != nil {
		return nil, WrapError(CodeInvalidIDToken, "invalid google id token", err)
	}

	email := NormalizeEmail(profile.Email)
	rec, err := a.identities.GetIdentityByEmail(ctx, email)
	switch {
	case err == nil:
		if rec.SignInMethod != SignInMethodGoogle {
			return nil, NewError(CodeDifferentCredential, "an account already exists with the same email address but different sign-in credentials")
		}
		if rec.Disabled {
			return nil, NewError(CodeUserDisabled, "the user account has been disabled")
		}
		if err := a.touchSignIn(ctx, rec); err != nil {
			return nil, err
		}
	case ErrorCode(err) == CodeUserNotFound:
		rec = &IdentityRecord{
			UID:           uuid.NewString(),
			Email:         email,
			SignInMethod:  SignInMethodGoogle,
			GoogleSubject: profile.Subject,
			EmailVerified: profile.EmailVerified,
			LastSignInAt:  time.Now(),
		}
		if err := a.identities.CreateIdentity(ctx, rec); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return a.signIn(rec)
}

func (a *Authenticator) SignOut(ctx context.Context) error {
	current := a.state.CurrentUser()
	if current == nil {
		return nil
	}

	// The handle is signed out even if the token could not be revoked.
	a.state.SetCurrent(nil)

	return a.tokens.Revoke(ctx, current)
}

func (a *Authenticator) DeleteUser(ctx context.Context, uid string) error {
	if err := a.identities.DeleteIdentity(ctx, uid); err != nil {
		return err
	}

	if current := a.state.CurrentUser(); current != nil && current.UID == uid {
		a.state.SetCurrent(nil)
		return a.tokens.Revoke(ctx, current)
	}

	return nil
}

func (a *Authenticator) Restore(ctx context.Context, idToken string) (*Identity, error) {
	claims, err := a.tokens.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	rec, err := a.identities.GetIdentity(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if rec.Disabled {
		return nil, NewError(CodeUserDisabled, "the user account has been disabled")
	}

	identity := rec.identity()
	identity.IDToken = idToken
	identity.TokenExpiresAt = claims.ExpiresAt.Time
	identity.tokenID = claims.ID

	a.state.SetCurrent(identity)

	return a.state.CurrentUser(), nil
}

func (a *Authenticator) CurrentUser() *Identity {
	return a.state.CurrentUser()
}

func (a *Authenticator) OnAuthStateChanged(fn func(*Identity)) func() {
	return a.state.OnAuthStateChanged(fn)
}

func (a *Authenticator) touchSignIn(ctx context.Context, rec *IdentityRecord) error {
	now := time.Now()
	if err := a.identities.UpdateIdentity(ctx, rec.UID, UpdateIdentityParams{
		LastSignInAt: &now,
	}); err != nil {
		return err
	}

	rec.LastSignInAt = now
	return nil
}

func (a *Authenticator) signIn(rec *IdentityRecord) (*Identity, error) {
	identity, err := a.tokens.Issue(rec)
	if err != nil {
		return nil, err
	}

	a.state.SetCurrent(identity)

	return a.state.CurrentUser(), nil
}

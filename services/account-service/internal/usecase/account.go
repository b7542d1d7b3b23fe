package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/school-site-api/shared/i18n"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

// AccountUsecase defines the account operations available on one provider
// auth handle.
//
// The admin operations (ListAllUsers, SetRole, SetBanned) do not check the
// caller's role. Callers must gate them.
type AccountUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*Result, error)
	Login(ctx context.Context, params LoginParams) (*Result, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*Result, error)
	Logout(ctx context.Context) (*Result, error)
	ListAllUsers(ctx context.Context) ([]*model.UserProfile, error)
	SetRole(ctx context.Context, userID string, role model.Role) (*Result, error)
	SetBanned(ctx context.Context, userID string, banned bool) (*Result, error)
	UpdateDisplayName(ctx context.Context, displayName string) (*Result, error)
	CurrentUser(ctx context.Context) (*model.UserProfile, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Email          string
	Password       string
	DisplayName    string
	EnrollmentCode string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// Result is the outcome of a successful operation.
type Result struct {
	User *model.UserProfile

	// IDToken is set by operations that sign an identity in.
	IDToken string

	Message string
}

// AccountDeps holds the process-scoped dependencies shared by every
// AccountUsecase.
type AccountDeps struct {
	Profiles            repository.ProfileRepository
	Translator          *i18n.Translator
	AdminEnrollmentCode string
	Logger              *zerolog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

type accountUsecase struct {
	auth provider.Auth
	AccountDeps
}

func NewAccountUsecase(auth provider.Auth, deps AccountDeps) AccountUsecase {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		nop := zerolog.Nop()
		deps.Logger = &nop
	}

	return &accountUsecase{auth: auth, AccountDeps: deps}
}

func (u *accountUsecase) Register(ctx context.Context, params RegisterParams) (*Result, error) {
	email := strings.TrimSpace(params.Email)
	displayName := strings.TrimSpace(params.DisplayName)

	if email == "" || params.Password == "" || displayName == "" {
		return nil, validationError(u.Translator, i18n.MsgAllFieldsRequired)
	}

	if len(params.Password) < provider.MinPasswordLength {
		return nil, &AccountError{
			Kind:    ErrValidation,
			Message: u.Translator.Translate(provider.NewError(provider.CodeWeakPassword, "weak password")),
		}
	}

	identity, err := u.auth.CreateUser(ctx, email, params.Password)
	if err != nil {
		return nil, providerError(u.Translator, err)
	}

	if err := u.auth.UpdateProfile(ctx, displayName); err != nil {
		u.discardIdentity(ctx, identity.UID)
		return nil, providerError(u.Translator, err)
	}

	now := u.timestamp()
	profile := &model.UserProfile{
		ID:            identity.UID,
		Email:         identity.Email,
		DisplayName:   displayName,
		Role:          u.roleFor(params.EnrollmentCode),
		IsBanned:      false,
		CreatedAt:     now,
		LastLoginAt:   now,
		EmailVerified: false,
	}

	if err := u.Profiles.CreateProfile(ctx, profile); err != nil {
		u.discardIdentity(ctx, identity.UID)
		return nil, providerError(u.Translator, err)
	}

	u.Logger.Info().
		Str("uid", profile.ID).
		Str("role", string(profile.Role)).
		Msg("account registered")

	return &Result{
		User:    profile,
		IDToken: identity.IDToken,
		Message: u.Translator.Message(i18n.MsgRegistered),
	}, nil
}

func (u *accountUsecase) Login(ctx context.Context, params LoginParams) (*Result, error) {
	email := strings.TrimSpace(params.Email)
	if email == "" || params.Password == "" {
		return nil, validationError(u.Translator, i18n.MsgCredentialsRequired)
	}

	identity, err := u.auth.SignIn(ctx, email, params.Password)
	if err != nil {
		return nil, providerError(u.Translator, err)
	}

	profile, err := u.admit(ctx, identity, nil)
	if err != nil {
		return nil, err
	}

	return &Result{
		User:    profile,
		IDToken: identity.IDToken,
		Message: u.Translator.Message(i18n.MsgLoggedIn),
	}, nil
}

func (u *accountUsecase) LoginWithGoogle(ctx context.Context, idToken string) (*Result, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, validationError(u.Translator, i18n.MsgGoogleTokenRequired)
	}

	identity, err := u.auth.SignInWithGoogle(ctx, idToken)
	if err != nil {
		return nil, providerError(u.Translator, err)
	}

	// First federated sign-in has no profile yet.
	create := func(ctx context.Context) (*model.UserProfile, error) {
		now := u.timestamp()
		profile := &model.UserProfile{
			ID:            identity.UID,
			Email:         identity.Email,
			DisplayName:   googleDisplayName(identity),
			Role:          model.RoleUser,
			CreatedAt:     now,
			LastLoginAt:   now,
			EmailVerified: identity.EmailVerified,
		}
		if err := u.Profiles.CreateProfile(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	profile, err := u.admit(ctx, identity, create)
	if err != nil {
		return nil, err
	}

	return &Result{
		User:    profile,
		IDToken: identity.IDToken,
		Message: u.Translator.Message(i18n.MsgLoggedIn),
	}, nil
}

func (u *accountUsecase) Logout(ctx context.Context) (*Result, error) {
	if err := u.auth.SignOut(ctx); err != nil {
		return nil, providerError(u.Translator, err)
	}

	return &Result{Message: u.Translator.Message(i18n.MsgLoggedOut)}, nil
}

func (u *accountUsecase) ListAllUsers(ctx context.Context) ([]*model.UserProfile, error) {
	profiles, err := u.Profiles.ListProfiles(ctx)
	if err != nil {
		return nil, providerError(u.Translator, err)
	}

	return profiles, nil
}

func (u *accountUsecase) SetRole(ctx context.Context, userID string, role model.Role) (*Result, error) {
	if !role.Valid() {
		return nil, validationError(u.Translator, i18n.MsgInvalidRole)
	}
	if strings.TrimSpace(userID) == "" {
		return nil, validationError(u.Translator, i18n.MsgAllFieldsRequired)
	}

	if err := u.Profiles.UpdateProfile(ctx, userID, repository.UpdateProfileParams{Role: &role}); err != nil {
		return nil, u.profileError(err)
	}

	u.Logger.Info().Str("uid", userID).Str("role", string(role)).Msg("role updated")

	return &Result{Message: u.Translator.Message(i18n.MsgRoleUpdated)}, nil
}

func (u *accountUsecase) SetBanned(ctx context.Context, userID string, banned bool) (*Result, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationError(u.Translator, i18n.MsgAllFieldsRequired)
	}

	params := repository.UpdateProfileParams{IsBanned: &banned}
	msg := i18n.MsgUserUnbanned
	if banned {
		now := u.timestamp()
		params.BannedAt = &now
		msg = i18n.MsgUserBanned
	}

	if err := u.Profiles.UpdateProfile(ctx, userID, params); err != nil {
		return nil, u.profileError(err)
	}

	u.Logger.Info().Str("uid", userID).Bool("banned", banned).Msg("ban state updated")

	return &Result{Message: u.Translator.Message(msg)}, nil
}

func (u *accountUsecase) UpdateDisplayName(ctx context.Context, displayName string) (*Result, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, validationError(u.Translator, i18n.MsgDisplayNameRequired)
	}

	identity := u.auth.CurrentUser()
	if identity == nil {
		return nil, &AccountError{Kind: ErrProvider, Message: u.Translator.Message(i18n.MsgNotSignedIn)}
	}

	if err := u.auth.UpdateProfile(ctx, displayName); err != nil {
		return nil, providerError(u.Translator, err)
	}

	if err := u.Profiles.UpdateProfile(ctx, identity.UID, repository.UpdateProfileParams{
		DisplayName: &displayName,
	}); err != nil {
		return nil, u.profileError(err)
	}

	profile, err := u.Profiles.GetProfile(ctx, identity.UID)
	if err != nil {
		return nil, u.profileError(err)
	}

	return &Result{User: profile, Message: u.Translator.Message(i18n.MsgDisplayNameUpdated)}, nil
}

// CurrentUser returns the profile of the identity signed in at call time, or
// nil when nobody is signed in or the identity has no profile.
func (u *accountUsecase) CurrentUser(ctx context.Context) (*model.UserProfile, error) {
	identity := u.auth.CurrentUser()
	if identity == nil {
		return nil, nil
	}

	profile, err := u.Profiles.GetProfile(ctx, identity.UID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, providerError(u.Translator, err)
	}

	return profile, nil
}

// admit loads the profile of a freshly signed-in identity, rejects banned or
// missing profiles and stamps lastLoginAt. Every rejection signs the identity
// out again. When create is set, a missing profile is created with it instead
// of being rejected.
func (u *accountUsecase) admit(
	ctx context.Context,
	identity *provider.Identity,
	create func(context.Context) (*model.UserProfile, error),
) (*model.UserProfile, error) {
	profile, err := u.Profiles.GetProfile(ctx, identity.UID)
	if errors.Is(err, repository.ErrProfileNotFound) && create != nil {
		created, cErr := create(ctx)
		if cErr != nil {
			u.signOut(ctx)
			return nil, providerError(u.Translator, cErr)
		}
		return created, nil
	}
	if err != nil {
		u.signOut(ctx)
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, &AccountError{
				Kind:    ErrProfileNotFound,
				Message: u.Translator.Message(i18n.MsgProfileNotFound),
			}
		}
		return nil, providerError(u.Translator, err)
	}

	if profile.IsBanned {
		u.signOut(ctx)
		u.Logger.Warn().Str("uid", profile.ID).Msg("banned account attempted to log in")
		return nil, &AccountError{
			Kind:    ErrAccountBanned,
			Message: u.Translator.Message(i18n.MsgAccountBanned),
		}
	}

	now := u.timestamp()
	if err := u.Profiles.UpdateProfile(ctx, profile.ID, repository.UpdateProfileParams{
		LastLoginAt: &now,
	}); err != nil {
		u.signOut(ctx)
		return nil, providerError(u.Translator, err)
	}
	profile.LastLoginAt = now

	return profile, nil
}

func (u *accountUsecase) roleFor(enrollmentCode string) model.Role {
	if enrollmentCode == "" || u.AdminEnrollmentCode == "" {
		return model.RoleUser
	}
	if subtle.ConstantTimeCompare([]byte(enrollmentCode), []byte(u.AdminEnrollmentCode)) == 1 {
		return model.RoleAdmin
	}
	return model.RoleUser
}

func (u *accountUsecase) profileError(err error) *AccountError {
	if errors.Is(err, repository.ErrProfileNotFound) {
		return &AccountError{
			Kind:    ErrProfileNotFound,
			Message: u.Translator.Message(i18n.MsgProfileNotFound),
			Err:     err,
		}
	}
	return providerError(u.Translator, err)
}

// discardIdentity removes an identity whose profile could not be written so
// no identity is left without a profile.
func (u *accountUsecase) discardIdentity(ctx context.Context, uid string) {
	if err := u.auth.DeleteUser(ctx, uid); err != nil {
		u.Logger.Error().Err(err).Str("uid", uid).Msg("failed to delete identity without profile")
	}
}

func (u *accountUsecase) signOut(ctx context.Context) {
	if err := u.auth.SignOut(ctx); err != nil {
		u.Logger.Error().Err(err).Msg("failed to sign out rejected identity")
	}
}

// timestamp returns the current time at the store's millisecond precision.
func (u *accountUsecase) timestamp() time.Time {
	return u.Now().UTC().Truncate(time.Millisecond)
}

func googleDisplayName(identity *provider.Identity) string {
	if identity.DisplayName != "" {
		return identity.DisplayName
	}
	name, _, _ := strings.Cut(identity.Email, "@")
	return name
}

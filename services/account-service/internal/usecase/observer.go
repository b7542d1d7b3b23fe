package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

// AuthState is what ObserveAuthState reports for each auth change.
type AuthState struct {
	User          *model.UserProfile `json:"user"`
	Authenticated bool               `json:"authenticated"`
}

// ObserveAuthState subscribes to auth changes on the handle and reports each
// one with the signed-in identity's profile. A failed or empty profile lookup
// is reported as signed out. The callback fires once immediately with the
// current state. The returned function unsubscribes and is safe to call more
// than once.
func ObserveAuthState(
	ctx context.Context,
	auth provider.Auth,
	profiles repository.ProfileRepository,
	logger *zerolog.Logger,
	callback func(AuthState),
) (unsubscribe func()) {
	return auth.OnAuthStateChanged(func(identity *provider.Identity) {
		if identity == nil {
			callback(AuthState{})
			return
		}

		profile, err := profiles.GetProfile(ctx, identity.UID)
		if err != nil {
			if !errors.Is(err, repository.ErrProfileNotFound) {
				logger.Error().Err(err).Str("uid", identity.UID).Msg("failed to load profile for auth state")
			}
			callback(AuthState{})
			return
		}

		callback(AuthState{User: profile, Authenticated: true})
	})
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

const profileCollection = "users"

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the interface for user profile storage.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *model.UserProfile) error
	GetProfile(ctx context.Context, id string) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) error
	ListProfiles(ctx context.Context) ([]*model.UserProfile, error)
}

// UpdateProfileParams defines the optional parameters for updating a profile.
// Only the fields that are not nil will be updated.
type UpdateProfileParams struct {
	DisplayName *string
	Role        *model.Role
	LastLoginAt *time.Time

	// BannedAt is written together with IsBanned; nil clears it.
	IsBanned *bool
	BannedAt *time.Time
}

type profileStoreRepository struct {
	store provider.Store
}

func NewProfileRepository(store provider.Store) ProfileRepository {
	return &profileStoreRepository{store: store}
}

func (r *profileStoreRepository) CreateProfile(ctx context.Context, profile *model.UserProfile) error {
	if err := r.store.Set(ctx, profileCollection, profile.ID, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *profileStoreRepository) GetProfile(ctx context.Context, id string) (*model.UserProfile, error) {
	snap, err := r.store.Get(ctx, profileCollection, id)
	if err != nil {
		if provider.IsNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile model.UserProfile
	if err := snap.Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &profile, nil
}

func (r *profileStoreRepository) UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) error {
	// Build update fields
	fields := map[string]any{}
	if params.DisplayName != nil {
		fields["displayName"] = *params.DisplayName
	}
	if params.Role != nil {
		fields["role"] = string(*params.Role)
	}
	if params.LastLoginAt != nil {
		fields["lastLoginAt"] = *params.LastLoginAt
	}
	if params.IsBanned != nil {
		fields["isBanned"] = *params.IsBanned
		if params.BannedAt != nil {
			fields["bannedAt"] = *params.BannedAt
		} else {
			fields["bannedAt"] = nil
		}
	}

	if len(fields) == 0 {
		return errors.New("no profile fields to update")
	}

	if err := r.store.Update(ctx, profileCollection, id, fields); err != nil {
		if provider.IsNotFound(err) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

func (r *profileStoreRepository) ListProfiles(ctx context.Context) ([]*model.UserProfile, error) {
	snapshots, err := r.store.List(ctx, profileCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]*model.UserProfile, 0, len(snapshots))
	for _, snap := range snapshots {
		var profile model.UserProfile
		if err := snap.Decode(&profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile %s: %w", snap.ID, err)
		}
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}

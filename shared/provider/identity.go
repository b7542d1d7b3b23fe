package provider

import (
	"context"
	"strings"
	"time"
)

// IdentityRecord is the stored form of an identity.
type IdentityRecord struct {
	UID           string    `bson:"_id"`
	Email         string    `bson:"email"`
	PasswordHash  string    `bson:"password_hash,omitempty"`
	DisplayName   string    `bson:"display_name"`
	SignInMethod  string    `bson:"sign_in_method"`
	GoogleSubject string    `bson:"google_subject,omitempty"`
	EmailVerified bool      `bson:"email_verified"`
	Disabled      bool      `bson:"disabled"`
	LastSignInAt  time.Time `bson:"last_sign_in_at"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func (r *IdentityRecord) identity() *Identity {
	return &Identity{
		UID:           r.UID,
		Email:         r.Email,
		DisplayName:   r.DisplayName,
		EmailVerified: r.EmailVerified,
		SignInMethod:  r.SignInMethod,
	}
}

// UpdateIdentityParams defines the optional identity fields to update.
// Only the fields that are not nil will be updated.
type UpdateIdentityParams struct {
	DisplayName  *string
	LastSignInAt *time.Time
	Disabled     *bool
}

// IdentityStore persists identity records for an adapter.
type IdentityStore interface {
	// CreateIdentity stores a new record. A taken email is a
	// CodeEmailAlreadyInUse error.
	CreateIdentity(ctx context.Context, rec *IdentityRecord) error

	// GetIdentity returns the record or a CodeUserNotFound error.
	GetIdentity(ctx context.Context, uid string) (*IdentityRecord, error)

	// GetIdentityByEmail returns the record or a CodeUserNotFound error.
	GetIdentityByEmail(ctx context.Context, email string) (*IdentityRecord, error)

	// UpdateIdentity applies params to the record.
	UpdateIdentity(ctx context.Context, uid string, params UpdateIdentityParams) error

	// DeleteIdentity removes the record or returns a CodeUserNotFound error.
	DeleteIdentity(ctx context.Context, uid string) error
}

// NormalizeEmail lower-cases and trims an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

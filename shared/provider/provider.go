// Package provider defines the boundary to the hosted identity and document
// store the site is built on. Adapters live in the mongostore and memstore
// subpackages.
package provider

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Error codes reported by the provider.
const (
	CodeEmailAlreadyInUse   = "auth/email-already-in-use"
	CodeWeakPassword        = "auth/weak-password"
	CodeInvalidEmail        = "auth/invalid-email"
	CodeUserNotFound        = "auth/user-not-found"
	CodeWrongPassword       = "auth/wrong-password"
	CodeDifferentCredential = "auth/account-exists-with-different-credential"
	CodeUserDisabled        = "auth/user-disabled"
	CodeInvalidIDToken      = "auth/invalid-id-token"
	CodeIDTokenExpired      = "auth/id-token-expired"
	CodeIDTokenRevoked      = "auth/id-token-revoked"
	CodeNoCurrentUser       = "auth/no-current-user"
	CodeNotFound            = "store/not-found"
	CodeInternal            = "internal"
)

// Sign-in methods recorded on identities.
const (
	SignInMethodPassword = "password"
	SignInMethodGoogle   = "google.com"
)

// MinPasswordLength is the shortest password the provider accepts.
const MinPasswordLength = 6

// Error is a failure reported by the provider.
type Error struct {
	Code    string
	Message string
	Err     error
}

// NewError creates a provider error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError creates a provider error that keeps the underlying cause.
func WrapError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the provider code carried by err, or "" if err is not a
// provider error.
func ErrorCode(err error) string {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return ""
}

// IsNotFound reports whether err is a provider not-found error.
func IsNotFound(err error) bool {
	return ErrorCode(err) == CodeNotFound
}

// Identity is an authenticated principal managed by the provider.
type Identity struct {
	UID           string
	Email         string
	DisplayName   string
	EmailVerified bool
	SignInMethod  string

	// IDToken is the token issued for the current sign-in. Empty on identities
	// that are not signed in.
	IDToken        string
	TokenExpiresAt time.Time

	tokenID string
}

// Snapshot is a document read from the store.
type Snapshot struct {
	ID  string
	Raw bson.Raw
}

// Decode unmarshals the document into out.
func (s *Snapshot) Decode(out any) error {
	return bson.Unmarshal(s.Raw, out)
}

// Auth is a handle on the provider's identity service. A handle tracks at
// most one signed-in identity at a time.
type Auth interface {
	// CreateUser creates a password identity and signs it in.
	CreateUser(ctx context.Context, email, password string) (*Identity, error)

	// UpdateProfile sets the display name of the signed-in identity.
	UpdateProfile(ctx context.Context, displayName string) error

	// SignIn verifies an email and password and signs the identity in.
	SignIn(ctx context.Context, email, password string) (*Identity, error)

	// SignInWithGoogle verifies a Google ID token and signs the linked
	// identity in, creating it on first use.
	SignInWithGoogle(ctx context.Context, idToken string) (*Identity, error)

	// SignOut signs the current identity out. Signing out with nobody signed
	// in is not an error.
	SignOut(ctx context.Context) error

	// DeleteUser removes an identity. If it is the signed-in identity the
	// handle is signed out as well.
	DeleteUser(ctx context.Context, uid string) error

	// Restore resumes a sign-in from a previously issued ID token.
	Restore(ctx context.Context, idToken string) (*Identity, error)

	// CurrentUser returns the signed-in identity or nil.
	CurrentUser() *Identity

	// OnAuthStateChanged registers fn to be called with the current identity
	// immediately and on every change. The returned function unsubscribes.
	OnAuthStateChanged(fn func(*Identity)) (unsubscribe func())
}

// Store is the provider's document database.
type Store interface {
	// Get returns the document or a CodeNotFound error.
	Get(ctx context.Context, collection, id string) (*Snapshot, error)

	// Set creates or replaces the document.
	Set(ctx context.Context, collection, id string, doc any) error

	// Update sets the given fields on an existing document. A missing
	// document is a CodeNotFound error.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// List returns every document in the collection.
	List(ctx context.Context, collection string) ([]*Snapshot, error)
}

// Backend hands out auth handles backed by one shared store.
type Backend interface {
	NewAuth() Auth
	Store() Store
	Close(ctx context.Context) error
}

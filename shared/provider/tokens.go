package provider

import (
	"context"
	"errors"
	"time"

	"github.com/vasapolrittideah/school-site-api/shared/auth"
	"github.com/vasapolrittideah/school-site-api/shared/provider/revocation"
)

// TokenConfig configures the ID tokens issued on sign-in.
type TokenConfig struct {
	Secret    string
	Issuer    string
	ExpiresIn time.Duration
}

// TokenIssuer issues, verifies and revokes ID tokens.
type TokenIssuer struct {
	jwtAuth auth.JWTAuthenticator
	config  TokenConfig
	revoked revocation.Store
}

// NewTokenIssuer creates a TokenIssuer. The issuer doubles as audience.
func NewTokenIssuer(config TokenConfig, revoked revocation.Store) *TokenIssuer {
	return &TokenIssuer{
		jwtAuth: auth.NewJWTAuthenticator(config.Issuer, config.Issuer),
		config:  config,
		revoked: revoked,
	}
}

// Issue signs an ID token for the identity record and returns the signed-in
// identity.
func (t *TokenIssuer) Issue(rec *IdentityRecord) (*Identity, error) {
	token, claims, err := t.jwtAuth.IssueIDToken(rec.UID, auth.IDTokenClaims{
		Email:         rec.Email,
		EmailVerified: rec.EmailVerified,
		SignInMethod:  rec.SignInMethod,
	}, t.config.Secret, t.config.ExpiresIn)
	if err != nil {
		return nil, WrapError(CodeInternal, "failed to issue id token", err)
	}

	identity := rec.identity()
	identity.IDToken = token
	identity.TokenExpiresAt = claims.ExpiresAt.Time
	identity.tokenID = claims.ID

	return identity, nil
}

// Verify checks the token signature, expiry and revocation state.
func (t *TokenIssuer) Verify(ctx context.Context, token string) (*auth.IDTokenClaims, error) {
	claims, err := t.jwtAuth.ParseIDToken(token, t.config.Secret)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, NewError(CodeIDTokenExpired, "id token has expired")
		}
		return nil, WrapError(CodeInvalidIDToken, "invalid id token", err)
	}

	revoked, err := t.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, WrapError(CodeInternal, "failed to check token revocation", err)
	}
	if revoked {
		return nil, NewError(CodeIDTokenRevoked, "id token has been revoked")
	}

	return claims, nil
}

// Revoke marks the identity's token as revoked for the rest of its lifetime.
func (t *TokenIssuer) Revoke(ctx context.Context, identity *Identity) error {
	if identity == nil || identity.tokenID == "" {
		return nil
	}

	ttl := time.Until(identity.TokenExpiresAt)
	if err := t.revoked.Revoke(ctx, identity.tokenID, ttl); err != nil {
		return WrapError(CodeInternal, "failed to revoke id token", err)
	}

	return nil
}

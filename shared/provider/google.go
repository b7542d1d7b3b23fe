package provider

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var (
	ErrInvalidGoogleAudience = errors.New("invalid google audience")
	ErrGoogleEmailMissing    = errors.New("google token has no email")
)

// GoogleProfile is the part of a verified Google ID token the provider uses.
type GoogleProfile struct {
	Subject       string
	Email         string
	EmailVerified bool
}

// GoogleVerifier verifies Google ID tokens.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleProfile, error)
}

// GoogleOAuthProvider verifies Google ID tokens against Google's tokeninfo
// endpoint and checks they were issued for clientID.
type GoogleOAuthProvider struct {
	clientID   string
	httpClient *http.Client
}

// NewGoogleOAuthProvider creates a verifier for tokens issued to clientID.
func NewGoogleOAuthProvider(clientID string) *GoogleOAuthProvider {
	return &GoogleOAuthProvider{
		clientID:   clientID,
		httpClient: &http.Client{},
	}
}

func (p *GoogleOAuthProvider) Verify(ctx context.Context, idToken string) (*GoogleProfile, error) {
	tokenInfo, err := p.ValidateIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	if tokenInfo.Email == "" {
		return nil, ErrGoogleEmailMissing
	}

	return &GoogleProfile{
		Subject:       tokenInfo.UserId,
		Email:         tokenInfo.Email,
		EmailVerified: tokenInfo.VerifiedEmail,
	}, nil
}

// ValidateIDToken asks Google to validate the token and checks its audience.
func (p *GoogleOAuthProvider) ValidateIDToken(ctx context.Context, idToken string) (*oauth2.Tokeninfo, error) {
	oauth2Service, err := oauth2.NewService(ctx, option.WithHTTPClient(p.httpClient))
	if err != nil {
		return nil, err
	}

	tokenInfoCall := oauth2Service.Tokeninfo()
	tokenInfoCall.IdToken(idToken)
	tokenInfo, err := tokenInfoCall.Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if tokenInfo.Audience != p.clientID {
		return nil, ErrInvalidGoogleAudience
	}

	return tokenInfo, nil
}

package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/devfolio/portfolio-web/internal/auth/domain"
)

// Provider abstracts the OAuth2 identity provider: it produces the consent
// URL and completes the authorization-code exchange, yielding an Identity.
type Provider interface {
	// AuthCodeURL returns the provider consent page URL for a state value.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for the user's identity. It
	// performs no persistence; failures surface as plain errors.
	Exchange(ctx context.Context, code string) (*domain.Identity, error)
}

// GoogleProvider implements Provider against Google's OAuth2 endpoints
// with the fixed profile+email scopes.
type GoogleProvider struct {
	cfg *oauth2.Config
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *GoogleProvider) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google: token exchange: %w", err)
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(g.cfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("google: userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("google: fetch userinfo: %w", err)
	}

	// Map the provider profile to the application identity here so the
	// provider-specific shape never leaks into session storage or views.
	return &domain.Identity{
		Provider:       "google",
		ProviderUserID: info.Id,
		DisplayName:    info.Name,
		Email:          info.Email,
		AvatarURL:      info.Picture,
	}, nil
}

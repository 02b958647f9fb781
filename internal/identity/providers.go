package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/localtrades/contractor-directory/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

const (
	facebookProfileURL = "https://graph.facebook.com/me?fields=id,name,email,picture"
	googleProfileURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Providers is the fixed set of enabled sign-in providers, resolved once at
// startup from configuration. Providers without credentials are absent; the
// set never changes afterwards.
type Providers struct {
	byName map[Provider]*oauthProvider
}

// NewProviders builds the enabled provider list from the explicit
// configuration struct.
func NewProviders(cfg config.Providers) *Providers {
	p := &Providers{byName: make(map[Provider]*oauthProvider)}

	if cfg.Facebook.Configured() {
		p.byName[ProviderFacebook] = &oauthProvider{
			name:       ProviderFacebook,
			profileURL: facebookProfileURL,
			oauth: &oauth2.Config{
				ClientID:     cfg.Facebook.ClientID,
				ClientSecret: cfg.Facebook.ClientSecret,
				Endpoint:     facebook.Endpoint,
				RedirectURL:  cfg.RedirectBaseURL + "/api/auth/facebook/callback",
				Scopes:       []string{"email", "public_profile"},
			},
		}
	}

	if cfg.Google.Configured() {
		p.byName[ProviderGoogle] = &oauthProvider{
			name:       ProviderGoogle,
			profileURL: googleProfileURL,
			oauth: &oauth2.Config{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
				Endpoint:     google.Endpoint,
				RedirectURL:  cfg.RedirectBaseURL + "/api/auth/google/callback",
				Scopes:       []string{"openid", "email", "profile"},
			},
		}
	}

	return p
}

// Lookup returns the exchanger for a provider name, or false if the provider
// is unknown or not configured.
func (p *Providers) Lookup(name Provider) (Exchanger, bool) {
	provider, ok := p.byName[name]
	return provider, ok
}

// Names lists the enabled providers.
func (p *Providers) Names() []Provider {
	names := make([]Provider, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}

	return names
}

type oauthProvider struct {
	name       Provider
	profileURL string
	oauth      *oauth2.Config
}

var _ Exchanger = (*oauthProvider)(nil)

func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

func (p *oauthProvider) Exchange(ctx context.Context, code string) (Profile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("code exchange with %s failed: %w", p.name, err)
	}

	client := p.oauth.Client(ctx, token)

	resp, err := client.Get(p.profileURL)
	if err != nil {
		return Profile{}, fmt.Errorf("profile fetch from %s failed: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("profile fetch from %s returned status %d", p.name, resp.StatusCode)
	}

	var raw struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Profile{}, fmt.Errorf("failed to decode %s profile: %w", p.name, err)
	}

	profile := Profile{
		Provider:  p.name,
		SubjectID: raw.ID,
		Email:     raw.Email,
		Name:      raw.Name,
	}

	if raw.Picture != "" {
		profile.AvatarURL = &raw.Picture
	}

	return profile, nil
}

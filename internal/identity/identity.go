// Package identity integrates the external OAuth sign-in providers. The
// service itself never authenticates; it resolves a provider profile into a
// session with a stable user identifier.
package identity

import (
	"context"
)

type Provider string

const (
	ProviderFacebook Provider = "facebook"
	ProviderGoogle   Provider = "google"
)

// Session is what the rest of the service sees after sign-in: a resolved
// user identifier and the provider that vouched for it.
type Session struct {
	UserID   string   `json:"user_id"`
	Provider Provider `json:"provider"`
}

// Profile is the identity information returned by a provider after a
// successful code exchange.
type Profile struct {
	Provider  Provider
	SubjectID string
	Email     string
	Name      string
	AvatarURL *string
}

// Exchanger turns an authorization code into a provider profile.
type Exchanger interface {
	// AuthCodeURL returns the provider's consent page URL for the given
	// anti-forgery state.
	AuthCodeURL(state string) string

	// Exchange redeems the authorization code and fetches the profile.
	Exchange(ctx context.Context, code string) (Profile, error)
}

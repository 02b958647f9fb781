package config

import (
	"testing"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviders_DistinctCredentialEnvNames(t *testing.T) {
	t.Setenv("FACEBOOK_CLIENT_ID", "fb-app-id")
	t.Setenv("FACEBOOK_CLIENT_SECRET", "fb-secret")
	t.Setenv("GOOGLE_CLIENT_ID", "g-app-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "g-secret")

	var providers Providers
	require.NoError(t, cleanenv.ReadEnv(&providers))

	assert.Equal(t, "fb-app-id", providers.Facebook.ClientID)
	assert.Equal(t, "fb-secret", providers.Facebook.ClientSecret)
	assert.Equal(t, "g-app-id", providers.Google.ClientID)
	assert.Equal(t, "g-secret", providers.Google.ClientSecret)

	assert.True(t, providers.Facebook.Configured())
	assert.True(t, providers.Google.Configured())
}

func TestProviders_OnlyOneProviderConfigured(t *testing.T) {
	t.Setenv("FACEBOOK_CLIENT_ID", "fb-app-id")
	t.Setenv("FACEBOOK_CLIENT_SECRET", "fb-secret")

	var providers Providers
	require.NoError(t, cleanenv.ReadEnv(&providers))

	assert.True(t, providers.Facebook.Configured())
	assert.False(t, providers.Google.Configured(), "google must not inherit facebook's credentials")
}

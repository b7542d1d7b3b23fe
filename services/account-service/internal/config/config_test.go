package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_ENROLLMENT_CODE", "staff-only")
	t.Setenv("ID_TOKEN_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "tr", cfg.Locale)
	assert.Equal(t, "Cemil Meriç Ortaokulu", cfg.Site.Name)
	assert.Equal(t, "staff-only", cfg.Site.AdminEnrollmentCode)
	assert.Equal(t, BackendMongo, cfg.Provider.Backend)
	assert.Equal(t, "school_site", cfg.Provider.MongoDatabase)
	assert.Equal(t, time.Hour, cfg.Token.ExpiresIn)
	assert.Equal(t, 5, cfg.Limit.Burst)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PROVIDER_BACKEND", "memory")
	t.Setenv("SITE_NAME", "Test Okulu")
	t.Setenv("LOCALE", "en")
	t.Setenv("ID_TOKEN_EXPIRES_IN", "30m")
	t.Setenv("GOOGLE_CLIENT_ID", "client.apps.googleusercontent.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://okul.example.com,http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Provider.Backend)
	assert.Equal(t, "Test Okulu", cfg.Site.Name)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 30*time.Minute, cfg.Token.ExpiresIn)
	assert.Equal(t, "client.apps.googleusercontent.com", cfg.Google.ClientID)
	assert.Equal(t, []string{"https://okul.example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing enrollment code",
			env:     map[string]string{"ID_TOKEN_SECRET": "s"},
			wantErr: "ADMIN_ENROLLMENT_CODE",
		},
		{
			name:    "missing token secret",
			env:     map[string]string{"ADMIN_ENROLLMENT_CODE": "c"},
			wantErr: "ID_TOKEN_SECRET",
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"ADMIN_ENROLLMENT_CODE": "c", "ID_TOKEN_SECRET": "s", "PROVIDER_BACKEND": "sqlite"},
			wantErr: "PROVIDER_BACKEND",
		},
		{
			name:    "unknown locale",
			env:     map[string]string{"ADMIN_ENROLLMENT_CODE": "c", "ID_TOKEN_SECRET": "s", "LOCALE": "de"},
			wantErr: "LOCALE",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"ADMIN_ENROLLMENT_CODE": "c", "ID_TOKEN_SECRET": "s", "ID_TOKEN_EXPIRES_IN": "soon"},
			wantErr: "ExpiresIn",
		},
		{
			name:    "bad trusted proxy",
			env:     map[string]string{"ADMIN_ENROLLMENT_CODE": "c", "ID_TOKEN_SECRET": "s", "TRUSTED_PROXIES": "10.0.0.0/40"},
			wantErr: "TRUSTED_PROXIES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_ENROLLMENT_CODE", "")
			t.Setenv("ID_TOKEN_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRateLimitConfig_TrustedPrefixes(t *testing.T) {
	cfg := RateLimitConfig{TrustedProxies: []string{"10.1.2.3/8", " 192.0.2.7 ", "", "::1"}}

	prefixes, err := cfg.TrustedPrefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 3)

	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.0.2.7/32", prefixes[1].String())
	assert.Equal(t, "::1/128", prefixes[2].String())

	_, err = RateLimitConfig{TrustedProxies: []string{"proxy.local"}}.TrustedPrefixes()
	assert.Error(t, err)
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/school-site-api/shared/provider"
	"github.com/vasapolrittideah/school-site-api/shared/provider/memstore"
)

func newBackend() *memstore.Backend {
	return memstore.New(provider.TokenConfig{Secret: "test-secret", Issuer: "school-site", ExpiresIn: time.Hour})
}

func recordStatus(w http.ResponseWriter, _ *http.Request, status int, err error) {
	w.WriteHeader(status)
	_, _ = w.Write([]byte(err.Error()))
}

func TestAuthHandle(t *testing.T) {
	backend := newBackend()
	logger := zerolog.Nop()

	created, err := backend.NewAuth().CreateUser(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	var seen *provider.Identity
	handler := AuthHandle(backend, &logger, recordStatus)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := AuthFromContext(r.Context())
		require.True(t, ok)
		seen = auth.CurrentUser()
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUID    string
	}{
		{name: "anonymous", header: "", wantStatus: http.StatusOK},
		{name: "valid token", header: "Bearer " + created.IDToken, wantStatus: http.StatusOK, wantUID: created.UID},
		{name: "lower-case scheme", header: "bearer " + created.IDToken, wantStatus: http.StatusOK, wantUID: created.UID},
		{name: "malformed header", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUID != "" {
				require.NotNil(t, seen)
				assert.Equal(t, tt.wantUID, seen.UID)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestRequireSignIn(t *testing.T) {
	backend := newBackend()
	logger := zerolog.Nop()

	created, err := backend.NewAuth().CreateUser(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	called := false
	handler := AuthHandle(backend, &logger, recordStatus)(
		RequireSignIn(recordStatus)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		})),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+created.IDToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

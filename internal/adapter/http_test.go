package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoogleTestVerifier(t *testing.T, serverURL string) IdentityVerifier {
	t.Helper()
	return NewGoogleVerifier(config.Federation{
		GoogleTokenInfoURL: serverURL,
		RequestTimeout:     5 * time.Second,
	}, logger.NewLogger("test"))
}

func newFacebookTestVerifier(t *testing.T, serverURL string) IdentityVerifier {
	t.Helper()
	return NewFacebookVerifier(config.Federation{
		FacebookGraphURL: serverURL,
		RequestTimeout:   5 * time.Second,
	}, logger.NewLogger("test"))
}

// ── Google ──────────────────────────────────────────────────────────────────

func TestGoogleVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "id-token-123", r.URL.Query().Get("id_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"email": "ada@example.com",
			"email_verified": "true",
			"name": "Ada Lovelace",
			"picture": "https://lh3.googleusercontent.com/a/photo=s96-c"
		}`))
	}))
	defer srv.Close()

	v := newGoogleTestVerifier(t, srv.URL)
	identity, err := v.Verify(context.Background(), "id-token-123")

	require.NoError(t, err)
	assert.Equal(t, models.ExternalIdentity{
		Email:     "ada@example.com",
		Name:      "Ada Lovelace",
		AvatarURL: "https://lh3.googleusercontent.com/a/photo=s96-c",
	}, identity)
}

func TestGoogleVerify_RejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid_token"}`))
	}))
	defer srv.Close()

	v := newGoogleTestVerifier(t, srv.URL)
	_, err := v.Verify(context.Background(), "garbage")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssertionRejected)
}

func TestGoogleVerify_UnverifiedEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email": "ada@example.com", "email_verified": "false"}`))
	}))
	defer srv.Close()

	v := newGoogleTestVerifier(t, srv.URL)
	_, err := v.Verify(context.Background(), "id-token-123")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestGoogleVerify_MissingEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Ada Lovelace"}`))
	}))
	defer srv.Close()

	v := newGoogleTestVerifier(t, srv.URL)
	_, err := v.Verify(context.Background(), "id-token-123")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteIdentity)
}

func TestGoogleVerify_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := newGoogleTestVerifier(t, srv.URL)
	_, err := v.Verify(context.Background(), "id-token-123")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

// ── Facebook ────────────────────────────────────────────────────────────────

func TestFacebookVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		assert.Equal(t, "access-token-456", r.URL.Query().Get("access_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "1020304",
			"name": "Grace Hopper",
			"email": "grace@example.com",
			"picture": {"data": {"url": "https://platform-lookaside.fbsbx.com/photo.jpg"}}
		}`))
	}))
	defer srv.Close()

	v := newFacebookTestVerifier(t, srv.URL)
	identity, err := v.Verify(context.Background(), "access-token-456")

	require.NoError(t, err)
	assert.Equal(t, models.ExternalIdentity{
		Email:     "grace@example.com",
		Name:      "Grace Hopper",
		AvatarURL: "https://platform-lookaside.fbsbx.com/photo.jpg",
	}, identity)
}

func TestFacebookVerify_RejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	v := newFacebookTestVerifier(t, srv.URL)
	_, err := v.Verify(context.Background(), "garbage")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssertionRejected)
}

func TestFacebookVerify_MissingEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "1020304", "name": "Grace Hopper"}`))
	}))
	defer srv.Close()

	v := newFacebookTestVerifier(t, srv.URL)
	_, err := v.Verify(context.Background(), "access-token-456")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteIdentity)
}

func TestVerifier_ProviderNames(t *testing.T) {
	assert.Equal(t, models.ProviderGoogle, newGoogleTestVerifier(t, "http://localhost").Provider())
	assert.Equal(t, models.ProviderFacebook, newFacebookTestVerifier(t, "http://localhost").Provider())
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgsafe-backend/internal/models"
	apperrors "imgsafe-backend/pkg/errors"
)

const testSecret = "test-secret"

// fakeTokenService backs the auth middleware with an in-memory token set.
type fakeTokenService struct {
	tokens map[string]*models.AccessToken
}

func (f *fakeTokenService) IssueToken(ctx context.Context, isAdmin bool) (*models.AccessToken, error) {
	claims := &models.TokenClaims{IsAdmin: isAdmin}
	signed, err := models.SignToken(claims, testSecret)
	if err != nil {
		return nil, err
	}
	token := &models.AccessToken{Token: signed, IsAdmin: isAdmin, CreatedAt: time.Now()}
	f.tokens[signed] = token
	return token, nil
}

func (f *fakeTokenService) GetToken(ctx context.Context, token string) (*models.AccessToken, error) {
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, apperrors.NewTokenNotFoundError()
}

func (f *fakeTokenService) ListTokens(ctx context.Context) ([]*models.AccessToken, error) {
	return nil, nil
}

func (f *fakeTokenService) DeleteToken(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{tokens: make(map[string]*models.AccessToken)}
}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := GetTokenFromContext(r.Context())
		require.True(t, ok, "token missing from context")
		require.NotEmpty(t, token)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	svc := newFakeTokenService()
	issued, err := svc.IssueToken(context.Background(), false)
	require.NoError(t, err)

	handler := Auth(svc, testSecret)(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/usage/my-usage", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := Auth(newFakeTokenService(), testSecret)(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/moderate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := Auth(newFakeTokenService(), testSecret)(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/moderate", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_BadSignature(t *testing.T) {
	svc := newFakeTokenService()
	signed, err := models.SignToken(&models.TokenClaims{}, "other-secret")
	require.NoError(t, err)

	handler := Auth(svc, testSecret)(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/moderate", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RevokedToken(t *testing.T) {
	svc := newFakeTokenService()
	issued, err := svc.IssueToken(context.Background(), false)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteToken(context.Background(), issued.Token))

	handler := Auth(svc, testSecret)(protectedEcho(t))

	// Signature still verifies, but the record is gone.
	req := httptest.NewRequest(http.MethodGet, "/api/moderate", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	svc := newFakeTokenService()
	admin, err := svc.IssueToken(context.Background(), true)
	require.NoError(t, err)
	user, err := svc.IssueToken(context.Background(), false)
	require.NoError(t, err)

	var reached bool
	handler := Auth(svc, testSecret)(AdminOnly()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})))

	adminReq := httptest.NewRequest(http.MethodGet, "/api/auth/tokens", nil)
	adminReq.Header.Set("Authorization", "Bearer "+admin.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminReq)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	reached = false
	userReq := httptest.NewRequest(http.MethodGet, "/api/auth/tokens", nil)
	userReq.Header.Set("Authorization", "Bearer "+user.Token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, userReq)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

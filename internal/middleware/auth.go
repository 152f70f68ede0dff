// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"imgsafe-backend/internal/models"
	"imgsafe-backend/internal/services"
	apperrors "imgsafe-backend/pkg/errors"
	"imgsafe-backend/pkg/utils"
)

type contextKey string

const (
	tokenContextKey   contextKey = "token"
	isAdminContextKey contextKey = "isAdmin"
)

// Auth validates the bearer token on every protected request: the HS256
// signature proves the token was issued by us, the store lookup proves it
// has not been revoked. The admin flag comes from the stored record, not
// from the claims, so revoking and re-issuing always wins.
func Auth(tokenService services.TokenService, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.SendErrorResponse(w, apperrors.NewAppError(
					apperrors.ErrUnauthorized,
					http.StatusUnauthorized,
					"authentication token not found",
				))
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				utils.SendErrorResponse(w, apperrors.NewAppError(
					apperrors.ErrUnauthorized,
					http.StatusUnauthorized,
					"invalid authorization format. Expected: Bearer <token>",
				))
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				utils.SendErrorResponse(w, apperrors.NewAppError(
					apperrors.ErrUnauthorized,
					http.StatusUnauthorized,
					"bearer token is empty",
				))
				return
			}

			if _, err := models.ParseToken(tokenString, secret); err != nil {
				utils.SendErrorResponse(w, apperrors.NewAppError(
					apperrors.ErrUnauthorized,
					http.StatusUnauthorized,
					"authentication failed: "+err.Error(),
				))
				return
			}

			record, err := tokenService.GetToken(r.Context(), tokenString)
			if err != nil {
				utils.SendErrorResponse(w, apperrors.NewAppError(
					apperrors.ErrUnauthorized,
					http.StatusUnauthorized,
					"invalid or revoked token",
				))
				return
			}

			ctx := context.WithValue(r.Context(), tokenContextKey, record.Token)
			ctx = context.WithValue(ctx, isAdminContextKey, record.IsAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly rejects authenticated requests whose token is not an admin
// token. Must run after Auth.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdminFromContext(r.Context()) {
				utils.SendErrorResponse(w, apperrors.NewAppError(
					apperrors.ErrForbidden,
					http.StatusForbidden,
					"admin privileges required",
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetTokenFromContext returns the authenticated bearer token, if any.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(isAdminContextKey).(bool)
	return ok && isAdmin
}

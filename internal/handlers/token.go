// internal/handlers/token.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"imgsafe-backend/internal/models"
	"imgsafe-backend/internal/services"
	"imgsafe-backend/internal/stats"
	apperrors "imgsafe-backend/pkg/errors"
	"imgsafe-backend/pkg/utils"
)

type TokenHandler struct {
	tokenService services.TokenService
	usageService services.UsageService
}

func NewTokenHandler(tokenService services.TokenService, usageService services.UsageService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
		usageService: usageService,
	}
}

// CreateToken issues a new bearer token. Unauthenticated by design so a
// fresh deployment can bootstrap its first admin token.
func (h *TokenHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTokenRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrBadRequest,
			http.StatusBadRequest,
			"invalid JSON format",
		))
		return
	}

	token, err := h.tokenService.IssueToken(r.Context(), req.IsAdmin)
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrInternalServer,
			http.StatusInternalServerError,
			"failed to create token: "+err.Error(),
		))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, models.TokenResponse{
		Token:     token.Token,
		IsAdmin:   token.IsAdmin,
		CreatedAt: token.CreatedAt,
	})
}

func (h *TokenHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.tokenService.ListTokens(r.Context())
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrInternalServer,
			http.StatusInternalServerError,
			"failed to list tokens: "+err.Error(),
		))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"tokens": tokens,
		"total":  len(tokens),
	})
}

func (h *TokenHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrValidation,
			http.StatusBadRequest,
			"token is required",
		))
		return
	}

	if err := h.tokenService.DeleteToken(r.Context(), token); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	render.JSON(w, r, models.MessageResponse{Message: "Token deleted successfully"})
}

// GetTokenUsageCounts returns the per-token usage counts shown next to each
// token in the admin panel. Counts are fetched concurrently; tokens whose
// lookup failed are listed separately instead of failing the whole call.
func (h *TokenHandler) GetTokenUsageCounts(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.tokenService.ListTokens(r.Context())
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrInternalServer,
			http.StatusInternalServerError,
			"failed to list tokens: "+err.Error(),
		))
		return
	}

	tokenIDs := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenIDs = append(tokenIDs, t.Token)
	}

	results := h.usageService.GetTokenUsageCounts(r.Context(), tokenIDs)

	failed := make([]string, 0)
	for _, res := range results {
		if !res.OK {
			failed = append(failed, res.TokenID)
		}
	}

	render.JSON(w, r, map[string]interface{}{
		"counts": stats.CountMap(results),
		"failed": failed,
		"total":  len(tokenIDs),
	})
}

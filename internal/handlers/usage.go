// internal/handlers/usage.go
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"imgsafe-backend/internal/middleware"
	"imgsafe-backend/internal/services"
	apperrors "imgsafe-backend/pkg/errors"
	"imgsafe-backend/pkg/utils"
)

type UsageHandler struct {
	usageService services.UsageService
}

func NewUsageHandler(usageService services.UsageService) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

// GetMyUsage returns the caller's raw usage history, newest first.
func (h *UsageHandler) GetMyUsage(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"not authenticated",
		))
		return
	}

	usage, err := h.usageService.GetUsageByToken(r.Context(), token)
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrInternalServer,
			http.StatusInternalServerError,
			"failed to get usage data: "+err.Error(),
		))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"usage": usage,
		"total": len(usage),
	})
}

// GetMyUsageStats returns the caller's aggregated endpoint and daily chart
// data. An optional ?tz=utc|local overrides the configured day-bucketing
// policy.
func (h *UsageHandler) GetMyUsageStats(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"not authenticated",
		))
		return
	}

	loc, err := h.parseTimezone(r)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	view, err := h.usageService.GetUsageStats(r.Context(), token, loc)
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrInternalServer,
			http.StatusInternalServerError,
			"failed to aggregate usage data: "+err.Error(),
		))
		return
	}

	render.JSON(w, r, view)
}

// GetUsageByToken returns the raw usage history for any token (admin only).
func (h *UsageHandler) GetUsageByToken(w http.ResponseWriter, r *http.Request) {
	tokenID := chi.URLParam(r, "tokenId")
	if tokenID == "" {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrValidation,
			http.StatusBadRequest,
			"token id is required",
		))
		return
	}

	usage, err := h.usageService.GetUsageByToken(r.Context(), tokenID)
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrInternalServer,
			http.StatusInternalServerError,
			"failed to get usage data: "+err.Error(),
		))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"token_id": tokenID,
		"usage":    usage,
		"total":    len(usage),
	})
}

// GetUsageByEndpoint returns the raw usage history for one endpoint (admin
// only). The endpoint path is the trailing wildcard so embedded slashes
// survive routing.
func (h *UsageHandler) GetUsageByEndpoint(w http.ResponseWriter, r *http.Request) {
	endpoint := chi.URLParam(r, "*")
	if endpoint == "" {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrValidation,
			http.StatusBadRequest,
			"endpoint is required",
		))
		return
	}

	usage, err := h.usageService.GetUsageByEndpoint(r.Context(), "/"+endpoint)
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrInternalServer,
			http.StatusInternalServerError,
			"failed to get usage data: "+err.Error(),
		))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"endpoint": "/" + endpoint,
		"usage":    usage,
		"total":    len(usage),
	})
}

func (h *UsageHandler) parseTimezone(r *http.Request) (*time.Location, error) {
	switch tz := r.URL.Query().Get("tz"); tz {
	case "":
		return nil, nil // service default
	case "utc":
		return time.UTC, nil
	case "local":
		return time.Local, nil
	default:
		return nil, apperrors.NewAppError(
			apperrors.ErrValidation,
			http.StatusBadRequest,
			"tz must be \"utc\" or \"local\"",
		)
	}
}

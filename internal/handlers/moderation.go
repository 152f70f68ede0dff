// internal/handlers/moderation.go
package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/render"

	"imgsafe-backend/internal/models"
	"imgsafe-backend/internal/services"
	"imgsafe-backend/internal/stats"
	apperrors "imgsafe-backend/pkg/errors"
	"imgsafe-backend/pkg/utils"
)

// maxUploadSize caps moderation uploads at 10 MiB.
const maxUploadSize = 10 << 20

type ModerationHandler struct {
	moderationService services.ModerationAPIService
}

func NewModerationHandler(moderationService services.ModerationAPIService) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
	}
}

type moderationResponse struct {
	models.ModerationResult
	// RiskFeatures is the globally ranked risk list derived from the
	// content analysis, each entry tagged with a severity level.
	RiskFeatures []stats.RiskFeature `json:"risk_features"`
}

func (h *ModerationHandler) ModerateImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrBadRequest,
			http.StatusBadRequest,
			"invalid multipart form: "+err.Error(),
		))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrValidation,
			http.StatusBadRequest,
			"image file is required",
		))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrBadRequest,
			http.StatusBadRequest,
			"failed to read uploaded file",
		))
		return
	}

	result, err := h.moderationService.ModerateImage(r.Context(), header.Filename, image)
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrInternalServer,
			http.StatusInternalServerError,
			"moderation request failed: "+err.Error(),
		))
		return
	}

	render.JSON(w, r, moderationResponse{
		ModerationResult: *result,
		RiskFeatures:     stats.RankRiskFeatures(result.Details.ContentAnalysis),
	})
}

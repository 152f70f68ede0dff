// pkg/utils/response.go
package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"imgsafe-backend/internal/models"
	apperrors "imgsafe-backend/pkg/errors"
)

// SendJSONResponse sends a JSON response with proper error handling
func SendJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	// Marshal the data first to catch any encoding errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("Error marshaling JSON response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		fallbackResponse := map[string]string{
			"error": "Internal server error: failed to encode response",
		}
		json.NewEncoder(w).Encode(fallbackResponse)
		return
	}

	w.WriteHeader(statusCode)

	if _, writeErr := w.Write(jsonData); writeErr != nil {
		zap.L().Error("Error writing response", zap.Error(writeErr))
	}
}

// SendErrorResponse serializes any error as a JSON error payload, using the
// AppError status code when available.
func SendErrorResponse(w http.ResponseWriter, err error) {
	statusCode := apperrors.GetStatusCode(err)

	response := models.ErrorResponse{
		Error: err.Error(),
	}
	SendJSONResponse(w, statusCode, response)
}

func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, "invalid JSON format")
	}
	return nil
}

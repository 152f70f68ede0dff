// internal/handlers/health.go
package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"imgsafe-backend/internal/models"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, models.HealthResponse{
		Status:  "healthy",
		Message: "imgsafe-backend is running",
	})
}

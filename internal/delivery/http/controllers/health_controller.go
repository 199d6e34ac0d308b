package controllers

import (
	"net/http"

	"guestgate/internal/delivery/http/helpers"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Ping godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /health/ping [get]
func (c *HealthController) Ping(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

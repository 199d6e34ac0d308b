package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"guestgate/internal/delivery/http/helpers"
	"guestgate/internal/domain"
)

// CheckinRequest is the request body for POST /checkin.
type CheckinRequest struct {
	Token string `json:"token"`
}

// Validate implements helpers.Validator.
func (c *CheckinRequest) Validate() []string {
	c.Token = strings.TrimSpace(c.Token)
	if c.Token == "" {
		return []string{"token is required"}
	}
	return nil
}

// CheckinSuccessResponse is the success response envelope for POST /checkin (200).
type CheckinSuccessResponse struct {
	Data  *domain.CheckinResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type CheckinController struct {
	Logger  *slog.Logger
	Service domain.CheckinService
}

func NewCheckinController(logger *slog.Logger, svc domain.CheckinService) *CheckinController {
	return &CheckinController{
		Logger:  logger,
		Service: svc,
	}
}

// Checkin godoc
// @Summary Redeem a guest token at the gate
// @Description Redeems a token. The first redemption returns status checked_in; every later redemption of the same token returns already_checked with the original timestamp. Safe under concurrent scans of the same token.
// @Tags checkin
// @Accept json
// @Produce json
// @Param body body CheckinRequest true "Token to redeem"
// @Success 200 {object} controllers.CheckinSuccessResponse "data.status is checked_in or already_checked"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: invalid_token"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin [post]
func (c *CheckinController) Checkin(w http.ResponseWriter, r *http.Request) {
	var req CheckinRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Redeem(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeInvalidToken, "invalid token")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

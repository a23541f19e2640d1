package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegistrationSuccessResponse is the success response envelope for registration operations.
type RegistrationSuccessResponse struct {
	Data  BooleanMessage    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Register godoc
// @Summary Register the current user for a conference
// @Description Registers the caller for the conference and takes one seat. Duplicate registration or an exhausted conference responds 409.
// @Tags registration
// @Produce json
// @Param websafeKey path string true "Websafe conference key"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered or no seats available)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeKey}/registration [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	websafeKey := r.PathValue("websafeKey")
	if websafeKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeKey")
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	success, err := c.Service.Register(r.Context(), id, websafeKey)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BooleanMessage{Success: success})
}

// Unregister godoc
// @Summary Unregister the current user from a conference
// @Description Removes the caller's registration and returns a seat. Responds success=false (not an error) when the caller was not registered.
// @Tags registration
// @Produce json
// @Param websafeKey path string true "Websafe conference key"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeKey}/registration [delete]
func (c *RegistrationController) Unregister(w http.ResponseWriter, r *http.Request) {
	websafeKey := r.PathValue("websafeKey")
	if websafeKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeKey")
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	success, err := c.Service.Unregister(r.Context(), id, websafeKey)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BooleanMessage{Success: success})
}

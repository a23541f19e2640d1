package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{
		Logger:  logger,
		Service: svc,
	}
}

// GetProfileSuccessResponse is the success response envelope for GET /profile (200).
type GetProfileSuccessResponse struct {
	Data  *domain.Profile   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetProfile godoc
// @Summary Get the current user's profile
// @Description Returns the caller's profile, creating it with defaults on first access.
// @Tags profile
// @Produce json
// @Success 200 {object} controllers.GetProfileSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	profile, err := c.Service.GetProfile(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// SaveProfileRequest is the request body for POST /profile. Empty fields are
// left untouched.
type SaveProfileRequest struct {
	DisplayName  string `json:"display_name"`
	TeeShirtSize string `json:"tee_shirt_size"`
}

// Validate implements helpers.Validator.
func (r *SaveProfileRequest) Validate() []string {
	if r.TeeShirtSize == "" {
		return nil
	}
	switch r.TeeShirtSize {
	case domain.TeeShirtNotSpecified, domain.TeeShirtXS, domain.TeeShirtS,
		domain.TeeShirtM, domain.TeeShirtL, domain.TeeShirtXL, domain.TeeShirtXXL:
		return nil
	}
	return []string{"tee_shirt_size must be one of NOT_SPECIFIED, XS, S, M, L, XL, XXL"}
}

// SaveProfile godoc
// @Summary Update the current user's profile
// @Description Overwrites display name and tee shirt size when non-empty; empty fields are left untouched.
// @Tags profile
// @Accept json
// @Produce json
// @Param body body controllers.SaveProfileRequest true "Profile fields"
// @Success 200 {object} controllers.GetProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [post]
func (c *ProfileController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	profile, err := c.Service.SaveProfile(r.Context(), id, req.DisplayName, req.TeeShirtSize)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

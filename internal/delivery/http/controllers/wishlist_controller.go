package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type WishlistController struct {
	Logger  *slog.Logger
	Service domain.WishlistService
}

func NewWishlistController(logger *slog.Logger, svc domain.WishlistService) *WishlistController {
	return &WishlistController{
		Logger:  logger,
		Service: svc,
	}
}

// Add godoc
// @Summary Add a session to the current user's wishlist
// @Description Adds the session to the caller's wishlist. A duplicate add responds 409.
// @Tags wishlist
// @Produce json
// @Param websafeKey path string true "Websafe session key"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already wishlisted)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{websafeKey}/wishlist [post]
func (c *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
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

	success, err := c.Service.Add(r.Context(), id, websafeKey)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BooleanMessage{Success: success})
}

// Remove godoc
// @Summary Remove a session from the current user's wishlist
// @Description Removes the session from the caller's wishlist. Responds success=false (not an error) when the session was not wishlisted.
// @Tags wishlist
// @Produce json
// @Param websafeKey path string true "Websafe session key"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{websafeKey}/wishlist [delete]
func (c *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
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

	success, err := c.Service.Remove(r.Context(), id, websafeKey)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BooleanMessage{Success: success})
}

// ListSessionsSuccessResponse is the success response envelope for session list endpoints.
type ListSessionsSuccessResponse struct {
	Data  []*domain.Session `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Sessions godoc
// @Summary Get the sessions on the current user's wishlist
// @Tags wishlist
// @Produce json
// @Success 200 {object} controllers.ListSessionsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/wishlist [get]
func (c *WishlistController) Sessions(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	sessions, err := c.Service.Sessions(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

type AnnouncementController struct {
	Logger  *slog.Logger
	Service domain.AnnouncementService
}

func NewAnnouncementController(logger *slog.Logger, svc domain.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		Logger:  logger,
		Service: svc,
	}
}

// GetAnnouncement godoc
// @Summary Get the current nearly-sold-out announcement
// @Description Returns the cached announcement. An empty string means no conference is nearly sold out.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.StringMessage
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/announcement [get]
func (c *AnnouncementController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement, err := c.Service.GetAnnouncement(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, announcement)
}

// RefreshAnnouncement godoc
// @Summary Recompute the nearly-sold-out announcement
// @Description Recomputes the announcement from current seat counts and stores it. Meant for cron-style callers; the server also runs it on a timer.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.StringMessage
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks/refresh-announcement [post]
func (c *AnnouncementController) RefreshAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement, err := c.Service.Refresh(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, announcement)
}

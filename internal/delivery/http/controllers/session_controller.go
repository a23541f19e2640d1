package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSessionRequest is the request body for POST /sessions. The owning
// conference is addressed by name; the first conference with that name wins.
type CreateSessionRequest struct {
	ConferenceName  string `json:"conference_name"`
	Name            string `json:"name"`
	Highlights      string `json:"highlights"`
	Speaker         string `json:"speaker"`
	DurationMinutes int    `json:"duration_minutes"`
	TypeOfSession   string `json:"type_of_session"`
	StartDate       string `json:"start_date"`
	StartTime       string `json:"start_time"`
	Venue           string `json:"venue"`
}

// Validate implements helpers.Validator.
func (r *CreateSessionRequest) Validate() []string {
	var errs []string
	if r.ConferenceName == "" {
		errs = append(errs, "conference_name is required")
	}
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.DurationMinutes < 0 {
		errs = append(errs, "duration_minutes must be >= 0")
	}
	if r.StartDate != "" {
		if _, err := time.Parse(dateLayout, r.StartDate); err != nil {
			errs = append(errs, "start_date must use YYYY-MM-DD format")
		}
	}
	if r.StartTime != "" {
		if _, err := time.Parse("15:04", r.StartTime); err != nil {
			errs = append(errs, "start_time must use HH:MM format")
		}
	}
	return errs
}

// CreateSessionSuccessResponse is the success response envelope for POST /sessions (201).
type CreateSessionSuccessResponse struct {
	Data  *domain.SessionWithKey `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// CreateSession godoc
// @Summary Create a session under a conference
// @Description Creates a session under the named conference. Only the conference organizer may do so; an unresolved conference name responds 401.
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body controllers.CreateSessionRequest true "Session fields"
// @Success 201 {object} controllers.CreateSessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (caller is not the organizer)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	input := domain.SessionInput{
		Name:            req.Name,
		Highlights:      req.Highlights,
		Speaker:         req.Speaker,
		DurationMinutes: req.DurationMinutes,
		TypeOfSession:   req.TypeOfSession,
		StartDate:       parseDate(req.StartDate),
		StartTime:       req.StartTime,
		Venue:           req.Venue,
	}
	session, err := c.Service.CreateSession(r.Context(), id.UserID, req.ConferenceName, input)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, session)
}

// ListSessionsWithKeySuccessResponse is the success response envelope for
// conference-scoped session list endpoints.
type ListSessionsWithKeySuccessResponse struct {
	Data  []*domain.SessionWithKey `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// GetConferenceSessions godoc
// @Summary Get all sessions of a conference
// @Tags sessions
// @Produce json
// @Param websafeKey path string true "Websafe conference key"
// @Success 200 {object} controllers.ListSessionsWithKeySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeKey}/sessions [get]
func (c *SessionController) GetConferenceSessions(w http.ResponseWriter, r *http.Request) {
	websafeKey := r.PathValue("websafeKey")
	if websafeKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeKey")
		return
	}

	sessions, err := c.Service.GetConferenceSessions(r.Context(), websafeKey)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// GetSessionsByType godoc
// @Summary Get sessions of a given type across all conferences
// @Tags sessions
// @Produce json
// @Param type path string true "Session type (e.g. lecture, keynote, workshop)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/bytype/{type} [get]
func (c *SessionController) GetSessionsByType(w http.ResponseWriter, r *http.Request) {
	typeOfSession := r.PathValue("type")
	if typeOfSession == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing type")
		return
	}

	sessions, err := c.Service.GetSessionsByType(r.Context(), typeOfSession)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// GetConferenceSessionsByType godoc
// @Summary Get sessions of a given type within a conference
// @Tags sessions
// @Produce json
// @Param websafeKey path string true "Websafe conference key"
// @Param type path string true "Session type"
// @Success 200 {object} controllers.ListSessionsWithKeySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeKey}/sessions/bytype/{type} [get]
func (c *SessionController) GetConferenceSessionsByType(w http.ResponseWriter, r *http.Request) {
	websafeKey := r.PathValue("websafeKey")
	typeOfSession := r.PathValue("type")
	if websafeKey == "" || typeOfSession == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeKey or type")
		return
	}

	sessions, err := c.Service.GetConferenceSessionsByType(r.Context(), websafeKey, typeOfSession)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// GetSessionsBySpeaker godoc
// @Summary Get sessions by a speaker across all conferences
// @Tags sessions
// @Produce json
// @Param speaker path string true "Speaker name"
// @Success 200 {object} controllers.ListSessionsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/byspeaker/{speaker} [get]
func (c *SessionController) GetSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	speaker := r.PathValue("speaker")
	if speaker == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speaker")
		return
	}

	sessions, err := c.Service.GetSessionsBySpeaker(r.Context(), speaker)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// GetConferenceSessionsBySpeaker godoc
// @Summary Get sessions by a speaker within a conference
// @Tags sessions
// @Produce json
// @Param websafeKey path string true "Websafe conference key"
// @Param speaker path string true "Speaker name"
// @Success 200 {object} controllers.ListSessionsWithKeySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeKey}/sessions/byspeaker/{speaker} [get]
func (c *SessionController) GetConferenceSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	websafeKey := r.PathValue("websafeKey")
	speaker := r.PathValue("speaker")
	if websafeKey == "" || speaker == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeKey or speaker")
		return
	}

	sessions, err := c.Service.GetConferenceSessionsBySpeaker(r.Context(), websafeKey, speaker)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

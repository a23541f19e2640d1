package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// dateLayout is the wire format for conference and session dates.
const dateLayout = "2006-01-02"

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// ConferenceResponse is a conference plus its websafe key, the only
// identifier callers may hold.
type ConferenceResponse struct {
	*domain.Conference
	WebsafeKey           string `json:"websafe_key"`
	OrganizerDisplayName string `json:"organizer_display_name,omitempty"`
}

func newConferenceResponse(c *domain.Conference, organizerDisplayName string) *ConferenceResponse {
	return &ConferenceResponse{
		Conference:           c,
		WebsafeKey:           c.WebsafeKey(),
		OrganizerDisplayName: organizerDisplayName,
	}
}

func newConferenceResponses(confs []*domain.Conference) []*ConferenceResponse {
	out := make([]*ConferenceResponse, 0, len(confs))
	for _, c := range confs {
		out = append(out, newConferenceResponse(c, ""))
	}
	return out
}

// CreateConferenceRequest is the request body for POST /conferences.
type CreateConferenceRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Topics       []string `json:"topics"`
	City         string   `json:"city"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// Validate implements helpers.Validator.
func (r *CreateConferenceRequest) Validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must be >= 0")
	}
	for _, d := range []string{r.StartDate, r.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			errs = append(errs, "dates must use YYYY-MM-DD format")
			break
		}
	}
	return errs
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// CreateConferenceSuccessResponse is the success response envelope for POST /conferences (201).
type CreateConferenceSuccessResponse struct {
	Data  *ConferenceResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// CreateConference godoc
// @Summary Create a new conference
// @Description Creates a conference owned by the caller. Name is required; city, topics, and max_attendees default when unset. Month is derived from start_date, and seats_available starts at max_attendees.
// @Tags conferences
// @Accept json
// @Produce json
// @Param conference body controllers.CreateConferenceRequest true "Conference fields"
// @Success 201 {object} controllers.CreateConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	input := domain.ConferenceInput{
		Name:         req.Name,
		Description:  req.Description,
		Topics:       req.Topics,
		City:         req.City,
		StartDate:    parseDate(req.StartDate),
		EndDate:      parseDate(req.EndDate),
		MaxAttendees: req.MaxAttendees,
	}
	conf, err := c.Service.CreateConference(r.Context(), id, input)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newConferenceResponse(conf, ""))
}

// GetConference godoc
// @Summary Get a conference by websafe key
// @Description Returns the conference and its organizer's display name.
// @Tags conferences
// @Produce json
// @Param websafeKey path string true "Websafe conference key"
// @Success 200 {object} controllers.CreateConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeKey} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	websafeKey := r.PathValue("websafeKey")
	if websafeKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeKey")
		return
	}

	result, err := c.Service.GetConference(r.Context(), websafeKey)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceResponse(result.Conference, result.OrganizerDisplayName))
}

// UpdateConferenceRequest is the request body for PUT /conferences/{websafeKey}.
// Absent fields are left untouched (sparse update).
type UpdateConferenceRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Topics       []string `json:"topics"`
	City         *string  `json:"city"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	MaxAttendees *int     `json:"max_attendees"`
}

// Validate implements helpers.Validator.
func (r *UpdateConferenceRequest) Validate() []string {
	var errs []string
	if r.MaxAttendees != nil && *r.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must be >= 0")
	}
	for _, d := range []*string{r.StartDate, r.EndDate} {
		if d == nil || *d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, *d); err != nil {
			errs = append(errs, "dates must use YYYY-MM-DD format")
			break
		}
	}
	return errs
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Applies a sparse update: only present fields overwrite stored values. Month is recomputed when start_date changes. Only the organizer may update.
// @Tags conferences
// @Accept json
// @Produce json
// @Param websafeKey path string true "Websafe conference key"
// @Param conference body controllers.UpdateConferenceRequest true "Fields to update"
// @Success 200 {object} controllers.CreateConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{websafeKey} [put]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	websafeKey := r.PathValue("websafeKey")
	if websafeKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing websafeKey")
		return
	}

	var req UpdateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	update := domain.ConferenceUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Topics:       req.Topics,
		City:         req.City,
		MaxAttendees: req.MaxAttendees,
	}
	if req.StartDate != nil {
		update.StartDate = parseDate(*req.StartDate)
	}
	if req.EndDate != nil {
		update.EndDate = parseDate(*req.EndDate)
	}

	conf, err := c.Service.UpdateConference(r.Context(), id.UserID, websafeKey, update)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceResponse(conf, ""))
}

// QueryConferencesRequest is the request body for POST /conferences/query.
type QueryConferencesRequest struct {
	Filters []domain.Filter `json:"filters"`
}

// QueryConferencesSuccessResponse is the success response envelope for POST /conferences/query (200).
type QueryConferencesSuccessResponse struct {
	Data  []*ConferenceResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// QueryConferences godoc
// @Summary Query conferences with filters
// @Description Applies the given (field, operator, value) filters conjunctively. At most one field may use a non-equality operator; results are ordered by that field, then name.
// @Tags conferences
// @Accept json
// @Produce json
// @Param body body controllers.QueryConferencesRequest true "Ordered filter list"
// @Success 200 {object} controllers.QueryConferencesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid filter or multiple inequality fields)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var req QueryConferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	confs, err := c.Service.QueryConferences(r.Context(), req.Filters)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceResponses(confs))
}

// GetConferencesCreated godoc
// @Summary Get conferences created by the current user
// @Tags conferences
// @Produce json
// @Success 200 {object} controllers.QueryConferencesSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/created [get]
func (c *ConferenceController) GetConferencesCreated(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	confs, err := c.Service.GetConferencesCreated(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceResponses(confs))
}

// GetConferencesToAttend godoc
// @Summary Get conferences the current user is registered for
// @Description Returns the conferences from the caller's attendance list, in registration order.
// @Tags conferences
// @Produce json
// @Success 200 {object} controllers.QueryConferencesSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/toattend [get]
func (c *ConferenceController) GetConferencesToAttend(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	confs, err := c.Service.GetConferencesToAttend(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newConferenceResponses(confs))
}

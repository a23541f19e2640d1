package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	profileController *controllers.ProfileController,
	conferenceController *controllers.ConferenceController,
	sessionController *controllers.SessionController,
	registrationController *controllers.RegistrationController,
	wishlistController *controllers.WishlistController,
	announcementController *controllers.AnnouncementController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireIdentity()

	// Profiles
	mux.HandleFunc("GET /profile", auth(profileController.GetProfile))
	mux.HandleFunc("PUT /profile", auth(profileController.SaveProfile))

	// Conferences
	mux.HandleFunc("POST /conferences", auth(conferenceController.CreateConference))
	mux.HandleFunc("POST /conferences/query", conferenceController.QueryConferences)
	mux.HandleFunc("GET /conferences/announcement", announcementController.GetAnnouncement)
	mux.HandleFunc("GET /conferences/created", auth(conferenceController.GetConferencesCreated))
	mux.HandleFunc("GET /conferences/toattend", auth(conferenceController.GetConferencesToAttend))
	mux.HandleFunc("GET /conferences/{websafeKey}", conferenceController.GetConference)
	mux.HandleFunc("PUT /conferences/{websafeKey}", auth(conferenceController.UpdateConference))

	// Registration
	mux.HandleFunc("POST /conferences/{websafeKey}/registration", auth(registrationController.Register))
	mux.HandleFunc("DELETE /conferences/{websafeKey}/registration", auth(registrationController.Unregister))

	// Sessions
	mux.HandleFunc("POST /sessions", auth(sessionController.CreateSession))
	mux.HandleFunc("GET /conferences/{websafeKey}/sessions", sessionController.GetConferenceSessions)
	mux.HandleFunc("GET /conferences/{websafeKey}/sessions/bytype/{type}", sessionController.GetConferenceSessionsByType)
	mux.HandleFunc("GET /conferences/{websafeKey}/sessions/byspeaker/{speaker}", sessionController.GetConferenceSessionsBySpeaker)
	mux.HandleFunc("GET /sessions/bytype/{type}", sessionController.GetSessionsByType)
	mux.HandleFunc("GET /sessions/byspeaker/{speaker}", sessionController.GetSessionsBySpeaker)

	// Wishlist
	mux.HandleFunc("GET /sessions/wishlist", auth(wishlistController.Sessions))
	mux.HandleFunc("POST /sessions/{websafeKey}/wishlist", auth(wishlistController.Add))
	mux.HandleFunc("DELETE /sessions/{websafeKey}/wishlist", auth(wishlistController.Remove))

	// Tasks
	mux.HandleFunc("POST /tasks/refresh-announcement", announcementController.RefreshAnnouncement)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

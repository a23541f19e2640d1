package domain

import (
	"context"
	"time"
)

// Session represents a session or talk within a conference. Sessions are
// created by the owning conference's organizer and are immutable afterwards.
// swagger:model Session
type Session struct {
	ID           string     `json:"id"`
	ConferenceID string     `json:"conference_id"`
	Name         string     `json:"name"`
	Highlights   string     `json:"highlights"`
	Speaker      string     `json:"speaker"`

	// DurationMinutes is the planned length of the session.
	DurationMinutes int `json:"duration_minutes"`

	TypeOfSession string     `json:"type_of_session"`
	StartDate     *time.Time `json:"start_date"`
	StartTime     string     `json:"start_time"`
	Venue         string     `json:"venue"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionInput carries the organizer-supplied fields for creating a session.
type SessionInput struct {
	Name            string
	Highlights      string
	Speaker         string
	DurationMinutes int
	TypeOfSession   string
	StartDate       *time.Time
	StartTime       string
	Venue           string
}

// SessionWithKey bundles a session with its websafe key. The key embeds the
// owning conference's key, so it is computed where the organizer is known.
type SessionWithKey struct {
	Session    *Session `json:"session"`
	WebsafeKey string   `json:"websafe_key"`
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByConferenceID(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByType(ctx context.Context, typeOfSession string) ([]*Session, error)
	ListByConferenceIDAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	ListByConferenceIDAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*Session, error)

	// ListByIDs returns sessions in input id order, skipping ids that do not
	// resolve.
	ListByIDs(ctx context.Context, ids []string) ([]*Session, error)
}

// SessionService defines session creation and query operations.
type SessionService interface {
	// CreateSession resolves the conference by name (first match) and creates
	// a session under it. Only the conference organizer may do so.
	CreateSession(ctx context.Context, organizerUserID, conferenceName string, input SessionInput) (*SessionWithKey, error)

	GetConferenceSessions(ctx context.Context, websafeConferenceKey string) ([]*SessionWithKey, error)
	GetSessionsByType(ctx context.Context, typeOfSession string) ([]*Session, error)
	GetConferenceSessionsByType(ctx context.Context, websafeConferenceKey, typeOfSession string) ([]*SessionWithKey, error)
	GetSessionsBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	GetConferenceSessionsBySpeaker(ctx context.Context, websafeConferenceKey, speaker string) ([]*SessionWithKey, error)
}

package domain

import (
	"context"
	"time"
)

// Default values applied to a conference when the organizer leaves the
// corresponding fields unset.
var (
	DefaultCity   = "Default City"
	DefaultTopics = []string{"Default", "Topic"}
)

// Conference represents a conference owned by an organizer profile.
// swagger:model Conference
type Conference struct {
	ID              string     `json:"id"`
	OrganizerUserID string     `json:"organizer_user_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Topics          []string   `json:"topics"`
	City            string     `json:"city"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`

	// Month is derived from StartDate (1-12); 0 when no start date is set.
	Month int `json:"month"`

	MaxAttendees   int `json:"max_attendees"`
	SeatsAvailable int `json:"seats_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the conference's hierarchical key under its organizer's profile.
func (c *Conference) Key() *Key {
	return ConferenceKey(c.OrganizerUserID, c.ID)
}

// WebsafeKey returns the websafe encoding of the conference key.
func (c *Conference) WebsafeKey() string {
	return c.Key().Websafe()
}

// ConferenceInput carries the organizer-supplied fields for creating a
// conference. Name is required; the rest default per DefaultCity/DefaultTopics.
type ConferenceInput struct {
	Name         string
	Description  string
	Topics       []string
	City         string
	StartDate    *time.Time
	EndDate      *time.Time
	MaxAttendees int
}

// ConferenceUpdate carries a sparse update: nil pointers leave the stored
// value untouched.
type ConferenceUpdate struct {
	Name         *string
	Description  *string
	Topics       []string
	City         *string
	StartDate    *time.Time
	EndDate      *time.Time
	MaxAttendees *int

	// Month mirrors StartDate. The service derives it; callers never set it.
	Month *int
}

// ConferenceWithOrganizer bundles a conference with its organizer's display name.
type ConferenceWithOrganizer struct {
	Conference           *Conference `json:"conference"`
	OrganizerDisplayName string      `json:"organizer_display_name"`
}

// ConferenceRepository defines the interface for conference storage
type ConferenceRepository interface {
	Create(ctx context.Context, conf *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)

	// GetFirstByName returns the earliest-created conference with the given
	// name. Name lookup is ambiguous under duplicates; first match wins.
	GetFirstByName(ctx context.Context, name string) (*Conference, error)

	ListByOrganizer(ctx context.Context, organizerUserID string) ([]*Conference, error)

	// ListByIDs returns conferences in input id order, skipping ids that do
	// not resolve.
	ListByIDs(ctx context.Context, ids []string) ([]*Conference, error)

	// Update writes only the fields the update carries and returns the row as
	// stored. Seat counts are never written from this path; they change only
	// inside the registration transaction.
	Update(ctx context.Context, id string, update ConferenceUpdate) (*Conference, error)

	// Search executes a compiled query plan and returns matches in plan order
	// (inequality column first when present, then name).
	Search(ctx context.Context, plan *QueryPlan) ([]*Conference, error)

	// ListNearlySoldOut returns conferences with 0 < seats_available <= limit.
	ListNearlySoldOut(ctx context.Context, limit int) ([]*Conference, error)
}

// ConferenceService defines conference lifecycle and query operations.
type ConferenceService interface {
	CreateConference(ctx context.Context, id ProfileIdentity, input ConferenceInput) (*Conference, error)
	UpdateConference(ctx context.Context, organizerUserID, websafeKey string, update ConferenceUpdate) (*Conference, error)
	GetConference(ctx context.Context, websafeKey string) (*ConferenceWithOrganizer, error)
	QueryConferences(ctx context.Context, filters []Filter) ([]*Conference, error)
	GetConferencesCreated(ctx context.Context, organizerUserID string) ([]*Conference, error)
	GetConferencesToAttend(ctx context.Context, id ProfileIdentity) ([]*Conference, error)
}

package domain

import "context"

// NearlySoldOutSeatLimit is the seat threshold below which (exclusive of
// zero) a conference is considered nearly sold out.
const NearlySoldOutSeatLimit = 5

// AnnouncementCache is the key-value cache holding the current announcement.
type AnnouncementCache interface {
	// GetAnnouncement returns the cached announcement, or "" when none is set.
	GetAnnouncement(ctx context.Context) (string, error)
	SetAnnouncement(ctx context.Context, message string) error
	ClearAnnouncement(ctx context.Context) error
}

// AnnouncementService recomputes and serves the nearly-sold-out announcement.
// The read path never recomputes; refresh runs out of band.
type AnnouncementService interface {
	GetAnnouncement(ctx context.Context) (string, error)
	// Refresh recomputes the announcement from current seat counts and stores
	// it, or clears the cache entry when no conference qualifies. It returns
	// the announcement it stored ("" when cleared).
	Refresh(ctx context.Context) (string, error)
}

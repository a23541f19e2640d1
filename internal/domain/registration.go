package domain

import "context"

// RegistrationStore provides the transactional scope the registration engine
// needs: an atomic read-modify-write over one profile row and one conference
// row together. Implementations lock both entities (or version and retry)
// so that two concurrent registrations for the same last seat cannot both
// succeed, and a write conflict surfaces as an error rather than a silently
// lost update.
type RegistrationStore interface {
	// UpdatePair loads the profile and conference under the transaction,
	// applies fn, and persists both on success. fn returning an error aborts
	// the transaction without writing. The conference must exist; the profile
	// is expected to have been created beforehand.
	UpdatePair(ctx context.Context, userID, conferenceID string, fn func(p *Profile, c *Conference) error) error
}

// RegistrationService defines conference registration operations.
type RegistrationService interface {
	// Register registers the user for the conference identified by its
	// websafe key. Duplicate registration and seat exhaustion fail with
	// ErrConflict; an unresolved key fails with ErrNotFound.
	Register(ctx context.Context, id ProfileIdentity, websafeConferenceKey string) (bool, error)

	// Unregister removes the registration and returns a seat. Returns false
	// (and no error) when the user was not registered.
	Unregister(ctx context.Context, id ProfileIdentity, websafeConferenceKey string) (bool, error)
}

// WishlistService defines session wishlist operations.
type WishlistService interface {
	// Add puts the session on the user's wishlist. A duplicate fails with
	// ErrConflict; an unresolved key fails with ErrNotFound.
	Add(ctx context.Context, id ProfileIdentity, websafeSessionKey string) (bool, error)

	// Remove takes the session off the wishlist. Returns false (and no error)
	// when the session was not wishlisted.
	Remove(ctx context.Context, id ProfileIdentity, websafeSessionKey string) (bool, error)

	// Sessions returns the sessions currently on the user's wishlist.
	Sessions(ctx context.Context, id ProfileIdentity) ([]*Session, error)
}

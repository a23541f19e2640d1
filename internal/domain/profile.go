package domain

import (
	"context"
	"time"
)

// TeeShirtSize values accepted on a profile. Stored as plain strings.
const (
	TeeShirtNotSpecified = "NOT_SPECIFIED"
	TeeShirtXS           = "XS"
	TeeShirtS            = "S"
	TeeShirtM            = "M"
	TeeShirtL            = "L"
	TeeShirtXL           = "XL"
	TeeShirtXXL          = "XXL"
)

// Profile represents a user profile. One exists per user identity; it is
// created lazily on first access and never deleted.
// swagger:model Profile
type Profile struct {
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name"`
	MainEmail    string `json:"main_email"`
	TeeShirtSize string `json:"tee_shirt_size"`

	// ConferenceKeysToAttend holds websafe conference keys in registration
	// order. Duplicates are forbidden.
	ConferenceKeysToAttend []string `json:"conference_keys_to_attend"`

	// SessionKeysWishlist holds websafe session keys in wishlist order.
	// Duplicates are forbidden.
	SessionKeysWishlist []string `json:"session_keys_wishlist"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile for the given identity with empty key lists.
func NewProfile(userID, displayName, mainEmail string, now time.Time) *Profile {
	return &Profile{
		UserID:       userID,
		DisplayName:  displayName,
		MainEmail:    mainEmail,
		TeeShirtSize: TeeShirtNotSpecified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Attending reports whether the profile holds the given websafe conference key.
func (p *Profile) Attending(websafeKey string) bool {
	return containsKey(p.ConferenceKeysToAttend, websafeKey)
}

// Wishing reports whether the profile holds the given websafe session key.
func (p *Profile) Wishing(websafeKey string) bool {
	return containsKey(p.SessionKeysWishlist, websafeKey)
}

// AddConferenceKey appends the websafe key to the attendance list.
// It reports false when the key is already present.
func (p *Profile) AddConferenceKey(websafeKey string) bool {
	if p.Attending(websafeKey) {
		return false
	}
	p.ConferenceKeysToAttend = append(p.ConferenceKeysToAttend, websafeKey)
	return true
}

// RemoveConferenceKey removes the websafe key from the attendance list,
// reporting whether it was present.
func (p *Profile) RemoveConferenceKey(websafeKey string) bool {
	keys, removed := removeKey(p.ConferenceKeysToAttend, websafeKey)
	p.ConferenceKeysToAttend = keys
	return removed
}

// AddSessionKey appends the websafe key to the wishlist.
// It reports false when the key is already present.
func (p *Profile) AddSessionKey(websafeKey string) bool {
	if p.Wishing(websafeKey) {
		return false
	}
	p.SessionKeysWishlist = append(p.SessionKeysWishlist, websafeKey)
	return true
}

// RemoveSessionKey removes the websafe key from the wishlist, reporting
// whether it was present.
func (p *Profile) RemoveSessionKey(websafeKey string) bool {
	keys, removed := removeKey(p.SessionKeysWishlist, websafeKey)
	p.SessionKeysWishlist = keys
	return removed
}

func containsKey(keys []string, k string) bool {
	for _, v := range keys {
		if v == k {
			return true
		}
	}
	return false
}

// removeKey removes the first occurrence of k, preserving order.
// It reports whether a removal happened.
func removeKey(keys []string, k string) ([]string, bool) {
	for i, v := range keys {
		if v == k {
			return append(keys[:i], keys[i+1:]...), true
		}
	}
	return keys, false
}

// ProfileIdentity carries the trusted caller identity resolved upstream.
// Email and name are used only when a profile is created lazily.
type ProfileIdentity struct {
	UserID      string
	Email       string
	DisplayName string
}

// ProfileRepository defines the interface for profile storage
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error

	// GetOrCreate returns the profile for the identity, creating it with
	// defaults when absent.
	GetOrCreate(ctx context.Context, id ProfileIdentity) (*Profile, error)

	// UpdateAtomic loads the profile under a row lock, applies fn, and
	// persists the result in the same transaction. fn returning an error
	// aborts without writing.
	UpdateAtomic(ctx context.Context, userID string, fn func(p *Profile) error) (*Profile, error)
}

// ProfileService defines profile read/edit operations.
type ProfileService interface {
	GetProfile(ctx context.Context, id ProfileIdentity) (*Profile, error)
	// SaveProfile overwrites displayName and teeShirtSize when non-empty;
	// empty fields are left untouched.
	SaveProfile(ctx context.Context, id ProfileIdentity, displayName, teeShirtSize string) (*Profile, error)
}

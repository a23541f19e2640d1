package domain

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Entity kinds used in hierarchical keys.
const (
	KindProfile    = "Profile"
	KindConference = "Conference"
	KindSession    = "Session"
)

// Key is a hierarchical entity key: a kind, an id, and an optional parent.
// Ownership is expressed as data (parent references), and the websafe string
// form is the only representation that crosses the system boundary.
type Key struct {
	Kind   string
	ID     string
	Parent *Key
}

// NewKey returns a root key for the given kind and id.
func NewKey(kind, id string) *Key {
	return &Key{Kind: kind, ID: id}
}

// Child returns a key of the given kind and id parented under k.
func (k *Key) Child(kind, id string) *Key {
	return &Key{Kind: kind, ID: id, Parent: k}
}

// path returns the root-to-leaf kind/id pairs, e.g.
// "Profile/u1/Conference/ab12".
func (k *Key) path() string {
	parts := make([]string, 0, 4)
	for cur := k; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Kind+"/"+cur.ID)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Websafe returns the URL-safe string encoding of the key. The encoding
// round-trips exactly through DecodeKey.
func (k *Key) Websafe() string {
	return base64.RawURLEncoding.EncodeToString([]byte(k.path()))
}

// DecodeKey parses a websafe key string back into a Key. It fails with
// ErrInvalidInput on malformed encodings or odd path lengths.
func DecodeKey(websafe string) (*Key, error) {
	raw, err := base64.RawURLEncoding.DecodeString(websafe)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed key %q", ErrInvalidInput, websafe)
	}
	parts := strings.Split(string(raw), "/")
	if len(parts) == 0 || len(parts)%2 != 0 {
		return nil, fmt.Errorf("%w: malformed key path %q", ErrInvalidInput, string(raw))
	}
	var key *Key
	for i := 0; i < len(parts); i += 2 {
		kind, id := parts[i], parts[i+1]
		if kind == "" || id == "" {
			return nil, fmt.Errorf("%w: malformed key path %q", ErrInvalidInput, string(raw))
		}
		if key == nil {
			key = NewKey(kind, id)
		} else {
			key = key.Child(kind, id)
		}
	}
	return key, nil
}

// AllocateID returns a new unique id for an entity scoped under a parent key.
// Ids are globally unique, so the parent only matters for key structure.
func AllocateID() string {
	return uuid.NewString()
}

// ProfileKey returns the root key for a user's profile.
func ProfileKey(userID string) *Key {
	return NewKey(KindProfile, userID)
}

// ConferenceKey returns the key for a conference owned by the given organizer.
func ConferenceKey(organizerUserID, conferenceID string) *Key {
	return ProfileKey(organizerUserID).Child(KindConference, conferenceID)
}

// SessionKey returns the key for a session under its owning conference key.
func SessionKey(conferenceKey *Key, sessionID string) *Key {
	return conferenceKey.Child(KindSession, sessionID)
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	h "conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Trusted identity headers set by the upstream gateway. Authentication itself
// happens before requests reach this service; these headers are assumed
// already verified.
const (
	HeaderUserID      = "X-User-ID"
	HeaderUserEmail   = "X-User-Email"
	HeaderDisplayName = "X-User-Name"
)

// SetIdentity returns a context with the caller identity set.
func SetIdentity(ctx context.Context, id domain.ProfileIdentity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller identity from the context, if present.
func IdentityFromContext(ctx context.Context) (domain.ProfileIdentity, bool) {
	id, ok := ctx.Value(identityKey).(domain.ProfileIdentity)
	return id, ok
}

// RequireIdentity returns a wrapper that reads the trusted identity headers and
// sets the caller identity in the request context. If no user id is present it
// responds with 401 and does not call next.
func RequireIdentity() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
			if userID == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authorization required")
				return
			}
			id := domain.ProfileIdentity{
				UserID:      userID,
				Email:       strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
				DisplayName: strings.TrimSpace(r.Header.Get(HeaderDisplayName)),
			}
			if id.DisplayName == "" {
				// Mirror the lazy-profile default of using the mailbox name.
				if at := strings.IndexByte(id.Email, '@'); at > 0 {
					id.DisplayName = id.Email[:at]
				}
			}
			r = r.WithContext(SetIdentity(r.Context(), id))
			next(w, r)
		}
	}
}

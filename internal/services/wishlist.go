package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type wishlistService struct {
	profileRepo    domain.ProfileRepository
	sessionRepo    domain.SessionRepository
	confRepo       domain.ConferenceRepository
	contextTimeout time.Duration
}

// NewWishlistService creates the session wishlist engine. Unlike
// registration it mutates a single entity (the profile), so a per-profile
// transaction is enough.
func NewWishlistService(
	profileRepo domain.ProfileRepository,
	sessionRepo domain.SessionRepository,
	confRepo domain.ConferenceRepository,
	timeout time.Duration,
) domain.WishlistService {
	return &wishlistService{
		profileRepo:    profileRepo,
		sessionRepo:    sessionRepo,
		confRepo:       confRepo,
		contextTimeout: timeout,
	}
}

// resolveSessionID decodes a websafe session key down to the stored id.
func resolveSessionID(websafeKey string) (string, error) {
	key, err := domain.DecodeKey(websafeKey)
	if err != nil {
		return "", err
	}
	if key.Kind != domain.KindSession {
		return "", fmt.Errorf("%w: key is not a session key", domain.ErrInvalidInput)
	}
	return key.ID, nil
}

// sessionByKey resolves a websafe key to its stored session. The supplied key
// must equal the session's canonical key, rebuilt under the owning
// conference; an alternative encoding of the same id does not resolve.
func (s *wishlistService) sessionByKey(ctx context.Context, websafeKey string) (*domain.Session, error) {
	sessionID, err := resolveSessionID(websafeKey)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no session found with key: %s", domain.ErrNotFound, websafeKey)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	conf, err := s.confRepo.GetByID(ctx, sess.ConferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no session found with key: %s", domain.ErrNotFound, websafeKey)
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if domain.SessionKey(conf.Key(), sess.ID).Websafe() != websafeKey {
		return nil, fmt.Errorf("%w: no session found with key: %s", domain.ErrNotFound, websafeKey)
	}
	return sess, nil
}

func (s *wishlistService) Add(ctx context.Context, id domain.ProfileIdentity, websafeKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.sessionByKey(ctx, websafeKey); err != nil {
		return false, err
	}

	if _, err := s.profileRepo.GetOrCreate(ctx, id); err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}

	_, err := s.profileRepo.UpdateAtomic(ctx, id.UserID, func(p *domain.Profile) error {
		if !p.AddSessionKey(websafeKey) {
			return fmt.Errorf("%w: you are already interested in this session", domain.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *wishlistService) Remove(ctx context.Context, id domain.ProfileIdentity, websafeKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.sessionByKey(ctx, websafeKey); err != nil {
		return false, err
	}

	if _, err := s.profileRepo.GetOrCreate(ctx, id); err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}

	removed := false
	_, err := s.profileRepo.UpdateAtomic(ctx, id.UserID, func(p *domain.Profile) error {
		if !p.RemoveSessionKey(websafeKey) {
			return errNoChange
		}
		removed = true
		return nil
	})
	if err != nil && !errors.Is(err, errNoChange) {
		return false, err
	}
	return removed, nil
}

func (s *wishlistService) Sessions(ctx context.Context, id domain.ProfileIdentity) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetOrCreate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	ids := make([]string, 0, len(profile.SessionKeysWishlist))
	for _, websafe := range profile.SessionKeysWishlist {
		sessionID, err := resolveSessionID(websafe)
		if err != nil {
			// A stored key that no longer decodes is skipped, not fatal.
			continue
		}
		ids = append(ids, sessionID)
	}

	sessions, err := s.sessionRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

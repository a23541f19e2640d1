package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type registrationService struct {
	profileRepo    domain.ProfileRepository
	store          domain.RegistrationStore
	contextTimeout time.Duration
}

// NewRegistrationService creates the conference registration engine.
func NewRegistrationService(
	profileRepo domain.ProfileRepository,
	store domain.RegistrationStore,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		profileRepo:    profileRepo,
		store:          store,
		contextTimeout: timeout,
	}
}

// resolveConferenceID decodes a websafe conference key down to the stored id.
func resolveConferenceID(websafeKey string) (string, error) {
	key, err := domain.DecodeKey(websafeKey)
	if err != nil {
		return "", err
	}
	if key.Kind != domain.KindConference {
		return "", fmt.Errorf("%w: key is not a conference key", domain.ErrInvalidInput)
	}
	return key.ID, nil
}

func (s *registrationService) Register(ctx context.Context, id domain.ProfileIdentity, websafeKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confID, err := resolveConferenceID(websafeKey)
	if err != nil {
		return false, err
	}

	// Profile is created lazily outside the pair transaction so the
	// transactional read always finds a row to lock.
	if _, err := s.profileRepo.GetOrCreate(ctx, id); err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}

	err = s.store.UpdatePair(ctx, id.UserID, confID, func(p *domain.Profile, c *domain.Conference) error {
		// The supplied key must be the conference's canonical key: an
		// alternative encoding of the same id would slip past the duplicate
		// check below and consume a second seat.
		if c.WebsafeKey() != websafeKey {
			return fmt.Errorf("%w: no conference found with key: %s", domain.ErrNotFound, websafeKey)
		}
		if p.Attending(websafeKey) {
			return fmt.Errorf("%w: you have already registered for this conference", domain.ErrConflict)
		}
		if c.SeatsAvailable <= 0 {
			return fmt.Errorf("%w: there are no seats available", domain.ErrConflict)
		}
		p.AddConferenceKey(websafeKey)
		c.SeatsAvailable = max(0, c.SeatsAvailable-1)
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *registrationService) Unregister(ctx context.Context, id domain.ProfileIdentity, websafeKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confID, err := resolveConferenceID(websafeKey)
	if err != nil {
		return false, err
	}

	if _, err := s.profileRepo.GetOrCreate(ctx, id); err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}

	registered := false
	err = s.store.UpdatePair(ctx, id.UserID, confID, func(p *domain.Profile, c *domain.Conference) error {
		if c.WebsafeKey() != websafeKey {
			return fmt.Errorf("%w: no conference found with key: %s", domain.ErrNotFound, websafeKey)
		}
		if !p.RemoveConferenceKey(websafeKey) {
			// Not registered: a no-op, not an error. Abort the write.
			return errNoChange
		}
		registered = true
		c.SeatsAvailable++
		return nil
	})
	if err != nil && !errors.Is(err, errNoChange) {
		return false, err
	}
	return registered, nil
}

// errNoChange aborts a pair transaction without surfacing an error to the
// caller. Used for idempotent no-op unregister/remove paths.
var errNoChange = errors.New("no change")

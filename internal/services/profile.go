package services

import (
	"context"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	profileRepo    domain.ProfileRepository
	contextTimeout time.Duration
}

// NewProfileService creates the profile read/edit service.
func NewProfileService(profileRepo domain.ProfileRepository, timeout time.Duration) domain.ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		contextTimeout: timeout,
	}
}

func (s *profileService) GetProfile(ctx context.Context, id domain.ProfileIdentity) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetOrCreate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) SaveProfile(ctx context.Context, id domain.ProfileIdentity, displayName, teeShirtSize string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.profileRepo.GetOrCreate(ctx, id); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	// Empty fields are left untouched, not cleared.
	profile, err := s.profileRepo.UpdateAtomic(ctx, id.UserID, func(p *domain.Profile) error {
		if displayName != "" {
			p.DisplayName = displayName
		}
		if teeShirtSize != "" {
			p.TeeShirtSize = teeShirtSize
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

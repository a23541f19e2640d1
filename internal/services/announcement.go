package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type announcementService struct {
	confRepo       domain.ConferenceRepository
	cache          domain.AnnouncementCache
	contextTimeout time.Duration
}

// NewAnnouncementService creates the nearly-sold-out announcement service.
func NewAnnouncementService(
	confRepo domain.ConferenceRepository,
	cache domain.AnnouncementCache,
	timeout time.Duration,
) domain.AnnouncementService {
	return &announcementService{
		confRepo:       confRepo,
		cache:          cache,
		contextTimeout: timeout,
	}
}

// GetAnnouncement is a pass-through cache read; it never recomputes.
func (s *announcementService) GetAnnouncement(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	msg, err := s.cache.GetAnnouncement(ctx)
	if err != nil {
		return "", fmt.Errorf("get announcement: %w", err)
	}
	return msg, nil
}

func (s *announcementService) Refresh(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confs, err := s.confRepo.ListNearlySoldOut(ctx, domain.NearlySoldOutSeatLimit)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out: %w", err)
	}

	if len(confs) == 0 {
		if err := s.cache.ClearAnnouncement(ctx); err != nil {
			return "", fmt.Errorf("clear announcement: %w", err)
		}
		return "", nil
	}

	names := make([]string, 0, len(confs))
	for _, c := range confs {
		names = append(names, c.Name)
	}
	announcement := "Last chance to attend! The following conferences are nearly sold out: " +
		strings.Join(names, ", ")

	if err := s.cache.SetAnnouncement(ctx, announcement); err != nil {
		return "", fmt.Errorf("set announcement: %w", err)
	}
	return announcement, nil
}

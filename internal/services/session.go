package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	confRepo       domain.ConferenceRepository
	contextTimeout time.Duration
}

// NewSessionService creates the session lifecycle and query service.
func NewSessionService(
	sessionRepo domain.SessionRepository,
	confRepo domain.ConferenceRepository,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		confRepo:       confRepo,
		contextTimeout: timeout,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, organizerUserID, conferenceName string, input domain.SessionInput) (*domain.SessionWithKey, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Conference is resolved by name, first match. Ambiguous under duplicate
	// names; see DESIGN.md.
	conf, err := s.confRepo.GetFirstByName(ctx, conferenceName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: session must belong to a conference", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerUserID != organizerUserID {
		return nil, fmt.Errorf("%w: only the conference organizer can add sessions", domain.ErrForbidden)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: session 'name' field required", domain.ErrInvalidInput)
	}

	now := time.Now()
	session := &domain.Session{
		ID:              domain.AllocateID(),
		ConferenceID:    conf.ID,
		Name:            input.Name,
		Highlights:      input.Highlights,
		Speaker:         input.Speaker,
		DurationMinutes: input.DurationMinutes,
		TypeOfSession:   input.TypeOfSession,
		StartDate:       input.StartDate,
		StartTime:       input.StartTime,
		Venue:           input.Venue,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	key := domain.SessionKey(conf.Key(), session.ID)
	return &domain.SessionWithKey{Session: session, WebsafeKey: key.Websafe()}, nil
}

// withKeys attaches websafe session keys built under the conference's key.
func withKeys(conf *domain.Conference, sessions []*domain.Session) []*domain.SessionWithKey {
	out := make([]*domain.SessionWithKey, 0, len(sessions))
	for _, sess := range sessions {
		key := domain.SessionKey(conf.Key(), sess.ID)
		out = append(out, &domain.SessionWithKey{Session: sess, WebsafeKey: key.Websafe()})
	}
	return out
}

func (s *sessionService) conferenceFromKey(ctx context.Context, websafeKey string) (*domain.Conference, error) {
	return conferenceByKey(ctx, s.confRepo, websafeKey)
}

func (s *sessionService) GetConferenceSessions(ctx context.Context, websafeConferenceKey string) ([]*domain.SessionWithKey, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceFromKey(ctx, websafeConferenceKey)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByConferenceID(ctx, conf.ID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return withKeys(conf, sessions), nil
}

func (s *sessionService) GetSessionsByType(ctx context.Context, typeOfSession string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListByType(ctx, typeOfSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) GetConferenceSessionsByType(ctx context.Context, websafeConferenceKey, typeOfSession string) ([]*domain.SessionWithKey, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceFromKey(ctx, websafeConferenceKey)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByConferenceIDAndType(ctx, conf.ID, typeOfSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return withKeys(conf, sessions), nil
}

func (s *sessionService) GetSessionsBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListBySpeaker(ctx, speaker)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) GetConferenceSessionsBySpeaker(ctx context.Context, websafeConferenceKey, speaker string) ([]*domain.SessionWithKey, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceFromKey(ctx, websafeConferenceKey)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByConferenceIDAndSpeaker(ctx, conf.ID, speaker)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return withKeys(conf, sessions), nil
}

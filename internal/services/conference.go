package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
)

type conferenceService struct {
	confRepo       domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewConferenceService creates the conference lifecycle and query service.
func NewConferenceService(
	confRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		confRepo:       confRepo,
		profileRepo:    profileRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *conferenceService) CreateConference(ctx context.Context, id domain.ProfileIdentity, input domain.ConferenceInput) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if input.Name == "" {
		return nil, fmt.Errorf("%w: conference 'name' field required", domain.ErrInvalidInput)
	}

	profile, err := s.profileRepo.GetOrCreate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	now := time.Now()
	conf := &domain.Conference{
		ID:              domain.AllocateID(),
		OrganizerUserID: profile.UserID,
		Name:            input.Name,
		Description:     input.Description,
		Topics:          input.Topics,
		City:            input.City,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		MaxAttendees:    input.MaxAttendees,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Defaults for unset optional fields.
	if conf.City == "" {
		conf.City = domain.DefaultCity
	}
	if len(conf.Topics) == 0 {
		conf.Topics = append([]string(nil), domain.DefaultTopics...)
	}
	if conf.StartDate != nil {
		conf.Month = int(conf.StartDate.Month())
	}
	if conf.MaxAttendees > 0 {
		conf.SeatsAvailable = conf.MaxAttendees
	}

	if err := s.confRepo.Create(ctx, conf); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	// Fire-and-forget confirmation email; creation succeeds regardless.
	go func(conf domain.Conference, email, name string) {
		data := &domain.ConferenceCreatedEmailData{
			Email:          email,
			OrganizerName:  name,
			ConferenceName: conf.Name,
			City:           conf.City,
			WebsafeKey:     conf.WebsafeKey(),
		}
		if err := s.emailService.SendConferenceCreated(context.Background(), data); err != nil {
			s.logger.Warn("confirmation email failed", "conference_id", conf.ID, "err", err)
		}
	}(*conf, profile.MainEmail, profile.DisplayName)

	return conf, nil
}

// conferenceByKey resolves a websafe key to its stored conference. The
// supplied key must equal the conference's canonical key exactly: an
// alternative encoding of the same id (a parentless key, a forged organizer
// path) does not resolve.
func conferenceByKey(ctx context.Context, repo domain.ConferenceRepository, websafeKey string) (*domain.Conference, error) {
	confID, err := resolveConferenceID(websafeKey)
	if err != nil {
		return nil, err
	}
	conf, err := repo.GetByID(ctx, confID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no conference found with key: %s", domain.ErrNotFound, websafeKey)
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.WebsafeKey() != websafeKey {
		return nil, fmt.Errorf("%w: no conference found with key: %s", domain.ErrNotFound, websafeKey)
	}
	return conf, nil
}

func (s *conferenceService) UpdateConference(ctx context.Context, organizerUserID, websafeKey string, update domain.ConferenceUpdate) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := conferenceByKey(ctx, s.confRepo, websafeKey)
	if err != nil {
		return nil, err
	}
	if conf.OrganizerUserID != organizerUserID {
		return nil, fmt.Errorf("%w: only the owner can update the conference", domain.ErrForbidden)
	}

	// Sparse update: only fields present in the request reach the store, so a
	// registration committing concurrently is never overwritten. Empty name
	// and city are treated as absent; month tracks startDate.
	if update.Name != nil && *update.Name == "" {
		update.Name = nil
	}
	if update.City != nil && *update.City == "" {
		update.City = nil
	}
	if update.StartDate != nil {
		month := int(update.StartDate.Month())
		update.Month = &month
	}

	updated, err := s.confRepo.Update(ctx, conf.ID, update)
	if err != nil {
		return nil, fmt.Errorf("update conference: %w", err)
	}
	return updated, nil
}

func (s *conferenceService) GetConference(ctx context.Context, websafeKey string) (*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := conferenceByKey(ctx, s.confRepo, websafeKey)
	if err != nil {
		return nil, err
	}

	displayName := ""
	if prof, err := s.profileRepo.GetByUserID(ctx, conf.OrganizerUserID); err == nil {
		displayName = prof.DisplayName
	}
	return &domain.ConferenceWithOrganizer{Conference: conf, OrganizerDisplayName: displayName}, nil
}

func (s *conferenceService) QueryConferences(ctx context.Context, filters []domain.Filter) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Validation always precedes execution; the store would not reject an
	// invalid multi-inequality query cleanly.
	plan, err := domain.CompileFilters(filters)
	if err != nil {
		return nil, err
	}
	confs, err := s.confRepo.Search(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("search conferences: %w", err)
	}
	return confs, nil
}

func (s *conferenceService) GetConferencesCreated(ctx context.Context, organizerUserID string) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confs, err := s.confRepo.ListByOrganizer(ctx, organizerUserID)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	return confs, nil
}

func (s *conferenceService) GetConferencesToAttend(ctx context.Context, id domain.ProfileIdentity) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetOrCreate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	ids := make([]string, 0, len(profile.ConferenceKeysToAttend))
	for _, websafe := range profile.ConferenceKeysToAttend {
		confID, err := resolveConferenceID(websafe)
		if err != nil {
			continue
		}
		ids = append(ids, confID)
	}

	confs, err := s.confRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	return confs, nil
}

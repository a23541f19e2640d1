package services

import (
	"context"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

type mockProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	err      error
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{profiles: make(map[string]*domain.Profile)}
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

func (m *mockProfileRepository) GetOrCreate(ctx context.Context, id domain.ProfileIdentity) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[id.UserID]; ok {
		cp := *p
		return &cp, nil
	}
	p := domain.NewProfile(id.UserID, id.DisplayName, id.Email, time.Now())
	m.profiles[id.UserID] = p
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepository) UpdateAtomic(ctx context.Context, userID string, fn func(p *domain.Profile) error) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	cp.ConferenceKeysToAttend = append([]string(nil), p.ConferenceKeysToAttend...)
	cp.SessionKeysWishlist = append([]string(nil), p.SessionKeysWishlist...)
	if err := fn(&cp); err != nil {
		return nil, err
	}
	m.profiles[userID] = &cp
	out := cp
	return &out, nil
}

type mockConferenceRepository struct {
	mu          sync.Mutex
	conferences map[string]*domain.Conference
	err         error

	searchResult []*domain.Conference
	lastPlan     *domain.QueryPlan

	// afterGetByID, when set, runs once the read has returned its copy.
	// Lets a test interleave a write between a read and a later update.
	afterGetByID func()
}

func newMockConferenceRepository() *mockConferenceRepository {
	return &mockConferenceRepository{conferences: make(map[string]*domain.Conference)}
}

func (m *mockConferenceRepository) Create(ctx context.Context, conf *domain.Conference) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *conf
	m.conferences[conf.ID] = &cp
	return nil
}

func (m *mockConferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	c, ok := m.conferences[id]
	if !ok {
		m.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	cp := *c
	m.mu.Unlock()
	if m.afterGetByID != nil {
		m.afterGetByID()
	}
	return &cp, nil
}

func (m *mockConferenceRepository) GetFirstByName(ctx context.Context, name string) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var first *domain.Conference
	for _, c := range m.conferences {
		if c.Name != name {
			continue
		}
		if first == nil || c.CreatedAt.Before(first.CreatedAt) {
			first = c
		}
	}
	if first == nil {
		return nil, domain.ErrNotFound
	}
	cp := *first
	return &cp, nil
}

func (m *mockConferenceRepository) ListByOrganizer(ctx context.Context, organizerUserID string) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Conference
	for _, c := range m.conferences {
		if c.OrganizerUserID == organizerUserID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Conference, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.conferences[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) Update(ctx context.Context, id string, update domain.ConferenceUpdate) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.conferences[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Description != nil {
		c.Description = *update.Description
	}
	if len(update.Topics) > 0 {
		c.Topics = append([]string(nil), update.Topics...)
	}
	if update.City != nil {
		c.City = *update.City
	}
	if update.StartDate != nil {
		c.StartDate = update.StartDate
	}
	if update.EndDate != nil {
		c.EndDate = update.EndDate
	}
	if update.Month != nil {
		c.Month = *update.Month
	}
	if update.MaxAttendees != nil {
		c.MaxAttendees = *update.MaxAttendees
	}
	cp := *c
	return &cp, nil
}

func (m *mockConferenceRepository) Search(ctx context.Context, plan *domain.QueryPlan) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastPlan = plan
	return m.searchResult, nil
}

func (m *mockConferenceRepository) ListNearlySoldOut(ctx context.Context, limit int) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Conference
	for _, c := range m.conferences {
		if c.SeatsAvailable > 0 && c.SeatsAvailable <= limit {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type mockSessionRepository struct {
	sessions map[string]*domain.Session
	err      error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.err != nil {
		return m.err
	}
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockSessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, s := range m.sessions {
		if s.ConferenceID == conferenceID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListByType(ctx context.Context, typeOfSession string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, s := range m.sessions {
		if s.TypeOfSession == typeOfSession {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListByConferenceIDAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, s := range m.sessions {
		if s.ConferenceID == conferenceID && s.TypeOfSession == typeOfSession {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, s := range m.sessions {
		if s.Speaker == speaker {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListByConferenceIDAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, s := range m.sessions {
		if s.ConferenceID == conferenceID && s.Speaker == speaker {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Session, 0, len(ids))
	for _, id := range ids {
		if s, ok := m.sessions[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeRegistrationStore applies the mutation callback against in-memory rows
// under a single mutex, mirroring the serialization the SQL store gets from
// row locks.
type fakeRegistrationStore struct {
	mu          sync.Mutex
	profileRepo *mockProfileRepository
	confRepo    *mockConferenceRepository
	err         error
}

func (f *fakeRegistrationStore) UpdatePair(ctx context.Context, userID, conferenceID string, fn func(p *domain.Profile, c *domain.Conference) error) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.profileRepo.mu.Lock()
	p, ok := f.profileRepo.profiles[userID]
	f.profileRepo.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	f.confRepo.mu.Lock()
	c, ok := f.confRepo.conferences[conferenceID]
	f.confRepo.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}

	pc := *p
	pc.ConferenceKeysToAttend = append([]string(nil), p.ConferenceKeysToAttend...)
	pc.SessionKeysWishlist = append([]string(nil), p.SessionKeysWishlist...)
	cc := *c
	if err := fn(&pc, &cc); err != nil {
		return err
	}

	f.profileRepo.mu.Lock()
	f.profileRepo.profiles[userID] = &pc
	f.profileRepo.mu.Unlock()
	f.confRepo.mu.Lock()
	f.confRepo.conferences[conferenceID] = &cc
	f.confRepo.mu.Unlock()
	return nil
}

type mockAnnouncementCache struct {
	mu      sync.Mutex
	message string
	set     bool
	err     error
}

func (m *mockAnnouncementCache) GetAnnouncement(ctx context.Context) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message, nil
}

func (m *mockAnnouncementCache) SetAnnouncement(ctx context.Context, message string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.message = message
	m.set = true
	return nil
}

func (m *mockAnnouncementCache) ClearAnnouncement(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.message = ""
	m.set = false
	return nil
}

type mockEmailService struct {
	mu   sync.Mutex
	sent []*domain.ConferenceCreatedEmailData
	err  error
}

func (m *mockEmailService) SendConferenceCreated(ctx context.Context, data *domain.ConferenceCreatedEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, data)
	return nil
}

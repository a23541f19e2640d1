package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

const sessionColumns = `id, conference_id, name, highlights, speaker, duration_minutes, type_of_session, start_date, start_time, venue, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (*domain.Session, error) {
	s := &domain.Session{}
	var startNull sql.NullTime
	err := row.Scan(
		&s.ID, &s.ConferenceID, &s.Name, &s.Highlights, &s.Speaker,
		&s.DurationMinutes, &s.TypeOfSession, &startNull, &s.StartTime, &s.Venue,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if startNull.Valid {
		s.StartDate = &startNull.Time
	}
	return s, nil
}

func collectSessions(rows *sql.Rows) ([]*domain.Session, error) {
	defer rows.Close()
	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (id, conference_id, name, highlights, speaker, duration_minutes, type_of_session, start_date, start_time, venue, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.ConferenceID, s.Name, s.Highlights, s.Speaker,
		s.DurationMinutes, s.TypeOfSession, s.StartDate, s.StartTime, s.Venue,
		s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = $1
	`
	return scanSession(r.DB.QueryRowContext(ctx, query, id))
}

func (r *sessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func (r *sessionRepository) ListByType(ctx context.Context, typeOfSession string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE type_of_session = $1
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, typeOfSession)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func (r *sessionRepository) ListByConferenceIDAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1 AND type_of_session = $2
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID, typeOfSession)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func (r *sessionRepository) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE speaker = $1
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, speaker)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func (r *sessionRepository) ListByConferenceIDAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*domain.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1 AND speaker = $2
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID, speaker)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func (r *sessionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = ANY($1)
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	sessions, err := collectSessions(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Session, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s
	}
	ordered := make([]*domain.Session, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{
		DB: db,
	}
}

const conferenceColumns = `id, organizer_user_id, name, description, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

func scanConference(row interface{ Scan(...any) error }) (*domain.Conference, error) {
	c := &domain.Conference{}
	var topics pq.StringArray
	var startNull, endNull sql.NullTime
	err := row.Scan(
		&c.ID, &c.OrganizerUserID, &c.Name, &c.Description, &topics, &c.City,
		&startNull, &endNull, &c.Month, &c.MaxAttendees, &c.SeatsAvailable,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.Topics = topics
	if startNull.Valid {
		c.StartDate = &startNull.Time
	}
	if endNull.Valid {
		c.EndDate = &endNull.Time
	}
	return c, nil
}

func collectConferences(rows *sql.Rows) ([]*domain.Conference, error) {
	defer rows.Close()
	confs := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		confs = append(confs, c)
	}
	return confs, rows.Err()
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	query := `
		INSERT INTO conferences (id, organizer_user_id, name, description, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.OrganizerUserID, c.Name, c.Description, pq.StringArray(c.Topics), c.City,
		c.StartDate, c.EndDate, c.Month, c.MaxAttendees, c.SeatsAvailable,
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE id = $1
	`
	return scanConference(r.DB.QueryRowContext(ctx, query, id))
}

func (r *conferenceRepository) GetFirstByName(ctx context.Context, name string) (*domain.Conference, error) {
	// Name lookup is ambiguous under duplicates; order by creation time so
	// "first match" is at least deterministic.
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE name = $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	return scanConference(r.DB.QueryRowContext(ctx, query, name))
}

func (r *conferenceRepository) ListByOrganizer(ctx context.Context, organizerUserID string) ([]*domain.Conference, error) {
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE organizer_user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerUserID)
	if err != nil {
		return nil, err
	}
	return collectConferences(rows)
}

func (r *conferenceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE id = ANY($1)
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	confs, err := collectConferences(rows)
	if err != nil {
		return nil, err
	}
	// Preserve input order; ids that did not resolve are skipped.
	byID := make(map[string]*domain.Conference, len(confs))
	for _, c := range confs {
		byID[c.ID] = c
	}
	ordered := make([]*domain.Conference, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// Update writes only the columns the update carries. Seat counts are owned by
// the registration transaction and are never touched here, so a registration
// committing concurrently with an organizer edit is preserved.
func (r *conferenceRepository) Update(ctx context.Context, id string, update domain.ConferenceUpdate) (*domain.Conference, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if update.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *update.Name)
		n++
	}
	if update.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *update.Description)
		n++
	}
	if len(update.Topics) > 0 {
		setClauses = append(setClauses, fmt.Sprintf("topics = $%d", n))
		args = append(args, pq.StringArray(update.Topics))
		n++
	}
	if update.City != nil {
		setClauses = append(setClauses, fmt.Sprintf("city = $%d", n))
		args = append(args, *update.City)
		n++
	}
	if update.StartDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_date = $%d", n))
		args = append(args, *update.StartDate)
		n++
	}
	if update.EndDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_date = $%d", n))
		args = append(args, *update.EndDate)
		n++
	}
	if update.Month != nil {
		setClauses = append(setClauses, fmt.Sprintf("month = $%d", n))
		args = append(args, *update.Month)
		n++
	}
	if update.MaxAttendees != nil {
		setClauses = append(setClauses, fmt.Sprintf("max_attendees = $%d", n))
		args = append(args, *update.MaxAttendees)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE conferences SET %s
		WHERE id = $%d
		RETURNING `+conferenceColumns, strings.Join(setClauses, ", "), n)
	return scanConference(r.DB.QueryRowContext(ctx, query, args...))
}

// Search executes a compiled query plan. Filters are conjunctive in plan
// order; ordering puts the inequality column first (the store's range-field
// requirement), then name as a stable tie-break. Plans come exclusively from
// domain.CompileFilters, so fields and operators are already allow-listed.
func (r *conferenceRepository) Search(ctx context.Context, plan *domain.QueryPlan) ([]*domain.Conference, error) {
	where := make([]string, 0, len(plan.Filters))
	args := make([]any, 0, len(plan.Filters))
	n := 1
	for _, f := range plan.Filters {
		switch {
		case f.Field == "topics" && f.Operator == "=":
			// Topics is a set; equality means membership.
			where = append(where, fmt.Sprintf("$%d = ANY(topics)", n))
		case f.Field == "topics" && f.Operator == "!=":
			where = append(where, fmt.Sprintf("NOT ($%d = ANY(topics))", n))
		default:
			where = append(where, fmt.Sprintf("%s %s $%d", f.Field, f.Operator, n))
		}
		args = append(args, f.Value)
		n++
	}

	query := `SELECT ` + conferenceColumns + ` FROM conferences`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY ` + strings.Join(plan.OrderBy(), ", ")

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectConferences(rows)
}

func (r *conferenceRepository) ListNearlySoldOut(ctx context.Context, limit int) ([]*domain.Conference, error) {
	query := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE seats_available > 0 AND seats_available <= $1
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectConferences(rows)
}

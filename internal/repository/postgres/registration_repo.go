package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns the transactional store backing the
// registration engine. Registration spans two entity groups (a profile and a
// conference), so both rows are locked in a single transaction.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationStore {
	return &registrationRepository{
		DB: db,
	}
}

// UpdatePair locks the profile row, then the conference row, runs fn, and
// writes both back before commit. Lock order is fixed (profile before
// conference) so concurrent registrations cannot deadlock; contenders for the
// same conference serialize on its row lock, which is what makes the
// last-seat check safe.
func (r *registrationRepository) UpdatePair(ctx context.Context, userID, conferenceID string, fn func(p *domain.Profile, c *domain.Conference) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	profileQuery := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
		FOR UPDATE
	`
	p, err := scanProfile(tx.QueryRowContext(ctx, profileQuery, userID))
	if err != nil {
		return err
	}

	confQuery := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE id = $1
		FOR UPDATE
	`
	c, err := scanConference(tx.QueryRowContext(ctx, confQuery, conferenceID))
	if err != nil {
		return err
	}

	if err := fn(p, c); err != nil {
		return err
	}

	profileUpdate := `
		UPDATE profiles
		SET conference_keys_to_attend = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	if _, err := tx.ExecContext(ctx, profileUpdate, p.UserID, pq.StringArray(p.ConferenceKeysToAttend)); err != nil {
		return err
	}

	confUpdate := `
		UPDATE conferences
		SET seats_available = $2, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, confUpdate, c.ID, c.SeatsAvailable); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

const profileColumns = `user_id, display_name, main_email, tee_shirt_size, conference_keys_to_attend, session_keys_wishlist, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	p := &domain.Profile{}
	var attend, wish pq.StringArray
	err := row.Scan(&p.UserID, &p.DisplayName, &p.MainEmail, &p.TeeShirtSize, &attend, &wish, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.ConferenceKeysToAttend = attend
	p.SessionKeysWishlist = wish
	return p, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
	`
	return scanProfile(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, display_name, main_email, tee_shirt_size, conference_keys_to_attend, session_keys_wishlist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.UserID, p.DisplayName, p.MainEmail, p.TeeShirtSize,
		pq.StringArray(p.ConferenceKeysToAttend), pq.StringArray(p.SessionKeysWishlist),
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *profileRepository) GetOrCreate(ctx context.Context, id domain.ProfileIdentity) (*domain.Profile, error) {
	p, err := r.GetByUserID(ctx, id.UserID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	p = domain.NewProfile(id.UserID, id.DisplayName, id.Email, now)
	if err := r.Create(ctx, p); err != nil {
		// Lost a create race with a concurrent request for the same identity.
		if existing, getErr := r.GetByUserID(ctx, id.UserID); getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// UpdateAtomic serializes wishlist and profile edits against concurrent
// writers by holding the profile row lock for the duration of fn.
func (r *profileRepository) UpdateAtomic(ctx context.Context, userID string, fn func(p *domain.Profile) error) (*domain.Profile, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
		FOR UPDATE
	`
	p, err := scanProfile(tx.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	update := `
		UPDATE profiles
		SET display_name = $2, tee_shirt_size = $3, conference_keys_to_attend = $4, session_keys_wishlist = $5, updated_at = NOW()
		WHERE user_id = $1
	`
	if _, err := tx.ExecContext(ctx, update,
		p.UserID, p.DisplayName, p.TeeShirtSize,
		pq.StringArray(p.ConferenceKeysToAttend), pq.StringArray(p.SessionKeysWishlist),
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

// Package users provides the PostgreSQL-backed credential store.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mpetrenko/linkfolio/internal/common"
	"github.com/mpetrenko/linkfolio/internal/dbx"
	"github.com/mpetrenko/linkfolio/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, password_hash, full_name, bio, industry,
		theme_preference, auth_token, onboarding_completed, onboarding_completed_at, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Bio, &u.Industry, &u.ThemePreference, &u.AuthToken,
		&u.OnboardingCompleted, &u.OnboardingCompletedAt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// Create inserts a minimal user row and returns it with the generated id.
// A unique-constraint race (uniqueness checked earlier, row inserted by a
// concurrent request in between) maps to DuplicateFieldError.
func (r *PostgresRepository) Create(ctx context.Context, username, email string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	u := &models.User{Username: username, Email: email}
	err := r.db.QueryRowContext(ctx, query, username, email).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			field := "username"
			if strings.Contains(pgErr.ConstraintName, "email") {
				field = "email"
			}
			return nil, &common.DuplicateFieldError{Field: field}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// FindConflict reports which unique column (if any) the candidate pair
// collides with, via a single lookup.
func (r *PostgresRepository) FindConflict(ctx context.Context, username, email string) (string, error) {
	query := `
		SELECT username, email FROM users
		WHERE username = $1 OR email = $2
		LIMIT 1
	`
	var gotUsername, gotEmail string
	err := r.db.QueryRowContext(ctx, query, username, email).Scan(&gotUsername, &gotEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	if gotUsername == username {
		return "username", nil
	}
	return "email", nil
}

// GetByID returns the user with the given id or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail returns the user with the given email or common.ErrNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByUsername returns the user with the given username (case-sensitive
// exact match) or common.ErrNotFound.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) updateColumn(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// UpdateAuthToken overwrites the stored bearer token, revoking any
// previously issued one.
func (r *PostgresRepository) UpdateAuthToken(ctx context.Context, id int64, token string) error {
	return r.updateColumn(ctx, `UPDATE users SET auth_token = $1 WHERE id = $2`, token, id)
}

// UpdatePasswordHash stores the encoded password hash.
func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.updateColumn(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
}

// UpdateIndustry stores the industry string verbatim.
func (r *PostgresRepository) UpdateIndustry(ctx context.Context, id int64, industry string) error {
	return r.updateColumn(ctx, `UPDATE users SET industry = $1 WHERE id = $2`, industry, id)
}

// UpdateProfileInfo stores bio and full name verbatim.
func (r *PostgresRepository) UpdateProfileInfo(ctx context.Context, id int64, bio, fullName string) error {
	return r.updateColumn(ctx, `UPDATE users SET bio = $1, full_name = $2 WHERE id = $3`, bio, fullName, id)
}

// UpdateTheme stores the theme preference verbatim.
func (r *PostgresRepository) UpdateTheme(ctx context.Context, id int64, theme string) error {
	return r.updateColumn(ctx, `UPDATE users SET theme_preference = $1 WHERE id = $2`, theme, id)
}

// MarkOnboardingComplete flips the completion flag. COALESCE keeps the first
// completion timestamp, so re-running the step is a no-op.
func (r *PostgresRepository) MarkOnboardingComplete(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET onboarding_completed = TRUE,
		    onboarding_completed_at = COALESCE(onboarding_completed_at, NOW())
		WHERE id = $1
	`
	return r.updateColumn(ctx, query, id)
}

// Package links provides the PostgreSQL-backed social-link store.
package links

import (
	"context"
	"fmt"

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

// DeleteByUserID removes every link owned by userID.
func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	query := `DELETE FROM social_links WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// InsertAll inserts the given links for userID, numbering positions in
// submission order.
func (r *PostgresRepository) InsertAll(ctx context.Context, userID int64, links []models.SocialLink) error {
	query := `
		INSERT INTO social_links (user_id, platform, url, button_text, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, l := range links {
		if _, err := r.db.ExecContext(ctx, query, userID, l.Platform, l.URL, l.ButtonText, i); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

// ListByUserID returns userID's links in submission order.
func (r *PostgresRepository) ListByUserID(ctx context.Context, userID int64) ([]models.SocialLink, error) {
	query := `
		SELECT user_id, platform, url, button_text, position
		FROM social_links
		WHERE user_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.SocialLink
	for rows.Next() {
		var l models.SocialLink
		if err := rows.Scan(&l.UserID, &l.Platform, &l.URL, &l.ButtonText, &l.Position); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

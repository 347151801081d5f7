// Package analytics provides the PostgreSQL-backed event store for the
// profile_analytics table.
package analytics

import (
	"context"
	"fmt"

	"github.com/mpetrenko/linkfolio/internal/dbx"
	"github.com/mpetrenko/linkfolio/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert appends one event row. The id must already be set by the caller.
func (r *PostgresRepository) Insert(ctx context.Context, event *models.AnalyticsEvent) error {
	query := `
		INSERT INTO profile_analytics (
			id, profile_username, visitor_id, session_id, event_type,
			link_data, referrer, user_agent, country, city, device, browser
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.ProfileUsername, event.VisitorID, event.SessionID,
		event.EventType, event.LinkData, event.Referrer, event.UserAgent,
		event.Country, event.City, event.Device, event.Browser)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// CountByProfile returns the number of events recorded against a profile
// username, existing or not.
func (r *PostgresRepository) CountByProfile(ctx context.Context, profileUsername string) (int64, error) {
	query := `SELECT COUNT(*) FROM profile_analytics WHERE profile_username = $1`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, profileUsername).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

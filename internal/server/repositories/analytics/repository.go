package analytics

import (
	"context"

	"github.com/mpetrenko/linkfolio/internal/server/models"
)

// Repository is the append-only analytics event store. There is no update
// or delete: rows are written once per tracked interaction.
type Repository interface {
	Insert(ctx context.Context, event *models.AnalyticsEvent) error
	CountByProfile(ctx context.Context, profileUsername string) (int64, error)
}

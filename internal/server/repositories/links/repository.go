package links

import (
	"context"

	"github.com/mpetrenko/linkfolio/internal/server/models"
)

// Repository persists the ordered set of outbound links per user.
// DeleteByUserID and InsertAll together implement the replace-all write;
// callers are expected to run them on a transactional DBTX.
type Repository interface {
	DeleteByUserID(ctx context.Context, userID int64) error
	InsertAll(ctx context.Context, userID int64, links []models.SocialLink) error
	ListByUserID(ctx context.Context, userID int64) ([]models.SocialLink, error)
}

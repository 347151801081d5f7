package users

import (
	"context"

	"github.com/mpetrenko/linkfolio/internal/server/models"
)

// Repository is the credential store contract: user rows plus the
// single-valued auth token that doubles as the bearer credential.
type Repository interface {
	Create(ctx context.Context, username, email string) (*models.User, error)

	// FindConflict runs the single uniqueness lookup backing account_setup.
	// It returns the name of the colliding column ("username" or "email",
	// username first on a double hit) or "" when both values are free.
	FindConflict(ctx context.Context, username, email string) (string, error)

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	UpdateAuthToken(ctx context.Context, id int64, token string) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateIndustry(ctx context.Context, id int64, industry string) error
	UpdateProfileInfo(ctx context.Context, id int64, bio, fullName string) error
	UpdateTheme(ctx context.Context, id int64, theme string) error

	// MarkOnboardingComplete is idempotent: the completion timestamp is
	// stamped once and kept on later calls.
	MarkOnboardingComplete(ctx context.Context, id int64) error
}

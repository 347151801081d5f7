package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mpetrenko/linkfolio/internal/common"
	"github.com/mpetrenko/linkfolio/internal/server/config"
	"github.com/mpetrenko/linkfolio/internal/server/models"
	"github.com/mpetrenko/linkfolio/internal/server/repositories/repomanager"
)

// Profile is the public view of one account: display fields plus the ordered
// link list. Internal fields (email, hashes, tokens) never appear here.
type Profile struct {
	Username string
	Name     string
	Bio      string
	Industry string
	Theme    string
	Links    []models.SocialLink
}

// ProfileService serves the unauthenticated public read path.
type ProfileService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	storeTimeout time.Duration
}

// NewProfileService constructs a ProfileService using repositories and
// server config.
func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ProfileService {
	return &ProfileService{
		db:           db,
		repomanager:  m,
		storeTimeout: cfg.StoreTimeout,
	}
}

// GetProfile looks up a profile by exact username. A miss surfaces as
// common.ErrNotFound; callers should not distinguish "never existed" from
// "not visible".
func (s *ProfileService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	if username == "" {
		return nil, common.NewValidationError("username is required")
	}

	usersRepo := s.repomanager.Users(s.db)

	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	user, err := usersRepo.GetByUsername(tctx, username)
	cancel()
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, storeErr(err)
	}

	linksRepo := s.repomanager.Links(s.db)
	tctx, cancel = storeCtx(ctx, s.storeTimeout)
	links, err := linksRepo.ListByUserID(tctx, user.ID)
	cancel()
	if err != nil {
		return nil, storeErr(err)
	}

	return &Profile{
		Username: user.Username,
		Name:     strOrEmpty(user.FullName),
		Bio:      strOrEmpty(user.Bio),
		Industry: strOrEmpty(user.Industry),
		Theme:    strOrEmpty(user.ThemePreference),
		Links:    links,
	}, nil
}

func strOrEmpty(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}

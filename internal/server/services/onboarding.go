package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mpetrenko/linkfolio/internal/common"
	"github.com/mpetrenko/linkfolio/internal/cryptox"
	"github.com/mpetrenko/linkfolio/internal/dbx"
	"github.com/mpetrenko/linkfolio/internal/server/config"
	"github.com/mpetrenko/linkfolio/internal/server/models"
	"github.com/mpetrenko/linkfolio/internal/server/repositories/repomanager"
	"github.com/mpetrenko/linkfolio/internal/server/token"
)

// Step is one named stage of the onboarding flow. The set is closed:
// ParseStep rejects anything outside it.
type Step string

const (
	StepAccountSetup Step = "account_setup"
	StepPassword     Step = "password"
	StepIndustry     Step = "industry"
	StepProfileInfo  Step = "profile_info"
	StepLinks        Step = "links"
	StepTheme        Step = "theme"
	StepComplete     Step = "complete"
)

// ParseStep maps a wire-level step name to a Step. Unknown names fail with
// common.ErrUnknownStep; there is no silent passthrough.
func ParseStep(s string) (Step, error) {
	switch Step(s) {
	case StepAccountSetup, StepPassword, StepIndustry, StepProfileInfo,
		StepLinks, StepTheme, StepComplete:
		return Step(s), nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownStep, s)
}

// AccountSetupResult is returned by the first onboarding step: the new
// account's id and its initial bearer token.
type AccountSetupResult struct {
	UserID int64
	Token  string
}

// OnboardingService implements the step flow that builds up a profile:
// account creation, password, industry, display info, links, theme, and the
// final completion mark. Every step is its own transaction boundary; a
// failed step never rolls back earlier ones.
type OnboardingService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	storeTimeout time.Duration
}

// NewOnboardingService constructs an OnboardingService using repositories and
// server config.
func NewOnboardingService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *OnboardingService {
	return &OnboardingService{
		db:           db,
		repomanager:  m,
		storeTimeout: cfg.StoreTimeout,
	}
}

// AccountSetup creates the account row, mints its first bearer token, and
// persists the token, all inside one transaction. The duplicate check runs
// first so the common collision case gets a field-specific error without
// burning a transaction; the database unique constraints still back it up
// under concurrency.
func (s *OnboardingService) AccountSetup(ctx context.Context, username, email string) (*AccountSetupResult, error) {
	if username == "" {
		return nil, common.NewValidationError("username is required")
	}
	if email == "" {
		return nil, common.NewValidationError("email is required")
	}

	repo := s.repomanager.Users(s.db)

	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	field, err := repo.FindConflict(tctx, username, email)
	cancel()
	if err != nil {
		return nil, storeErr(err)
	}
	if field != "" {
		return nil, &common.DuplicateFieldError{Field: field}
	}

	var result *AccountSetupResult
	tctx, cancel = storeCtx(ctx, s.storeTimeout)
	defer cancel()
	err = dbx.WithTx(tctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)

		user, err := repoTx.Create(ctx, username, email)
		if err != nil {
			return err
		}
		tok, err := token.Issue(user.ID, user.Email)
		if err != nil {
			return common.ErrInternal
		}
		if err := repoTx.UpdateAuthToken(ctx, user.ID, tok); err != nil {
			return err
		}
		result = &AccountSetupResult{UserID: user.ID, Token: tok}
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return result, nil
}

// SetPassword hashes the password with a per-password random salt and stores
// the encoded hash against the authenticated user.
func (s *OnboardingService) SetPassword(ctx context.Context, userID int64, password string) error {
	if password == "" {
		return common.NewValidationError("password is required")
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return common.ErrInternal
	}

	repo := s.repomanager.Users(s.db)
	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	return storeErr(repo.UpdatePasswordHash(tctx, userID, hash))
}

// SetIndustry stores the industry label verbatim; it is free text and may
// be empty.
func (s *OnboardingService) SetIndustry(ctx context.Context, userID int64, industry string) error {
	repo := s.repomanager.Users(s.db)
	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	return storeErr(repo.UpdateIndustry(tctx, userID, industry))
}

// SetProfileInfo stores the display bio and full name. Both are free text
// and may be empty.
func (s *OnboardingService) SetProfileInfo(ctx context.Context, userID int64, bio, fullName string) error {
	repo := s.repomanager.Users(s.db)
	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	return storeErr(repo.UpdateProfileInfo(tctx, userID, bio, fullName))
}

// ReplaceLinks replaces the user's link list wholesale: delete-all plus
// insert-all inside one transaction, so readers never observe a partial set.
// Submission order is preserved. An empty list clears the links.
func (s *OnboardingService) ReplaceLinks(ctx context.Context, userID int64, links []models.SocialLink) error {
	for i, l := range links {
		if l.Platform == "" {
			return common.NewValidationError("link %d: platform is required", i)
		}
		if l.URL == "" {
			return common.NewValidationError("link %d: url is required", i)
		}
	}

	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	err := dbx.WithTx(tctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Links(tx)
		if err := repoTx.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		return repoTx.InsertAll(ctx, userID, links)
	})
	return storeErr(err)
}

// SetTheme stores the theme preference verbatim; it is free text and may
// be empty.
func (s *OnboardingService) SetTheme(ctx context.Context, userID int64, theme string) error {
	repo := s.repomanager.Users(s.db)
	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	return storeErr(repo.UpdateTheme(tctx, userID, theme))
}

// Complete marks onboarding finished. Calling it again is a no-op that keeps
// the original completion timestamp.
func (s *OnboardingService) Complete(ctx context.Context, userID int64) error {
	repo := s.repomanager.Users(s.db)
	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	return storeErr(repo.MarkOnboardingComplete(tctx, userID))
}

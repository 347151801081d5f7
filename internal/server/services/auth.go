package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mpetrenko/linkfolio/internal/common"
	"github.com/mpetrenko/linkfolio/internal/cryptox"
	"github.com/mpetrenko/linkfolio/internal/server/config"
	"github.com/mpetrenko/linkfolio/internal/server/models"
	"github.com/mpetrenko/linkfolio/internal/server/repositories/repomanager"
	"github.com/mpetrenko/linkfolio/internal/server/token"
)

// LoginResult carries the identity and freshly minted bearer token returned
// by a successful login.
type LoginResult struct {
	UserID   int64
	Username string
	Email    string
	Token    string
}

// AuthService provides credential verification:
// - Login: verify email/password and mint a fresh bearer token
// - Authenticate: resolve a presented bearer token to a user
type AuthService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	storeTimeout time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:           db,
		repomanager:  m,
		storeTimeout: cfg.StoreTimeout,
	}
}

// Login verifies the password against the stored hash and, on success,
// reissues the user's bearer token. Reissuing overwrites the stored token,
// so any previously issued token stops working.
//
// Unknown email, unset password, and wrong password all fail with
// ErrInvalidCredential so the response does not leak which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" {
		return nil, common.NewValidationError("email is required")
	}
	if password == "" {
		return nil, common.NewValidationError("password is required")
	}

	repo := s.repomanager.Users(s.db)

	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	user, err := repo.GetByEmail(tctx, email)
	cancel()
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredential
		}
		return nil, storeErr(err)
	}

	if !user.PasswordHash.Valid {
		return nil, common.ErrInvalidCredential
	}
	ok, err := cryptox.VerifyPassword(password, user.PasswordHash.String)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredential
	}

	tok, err := token.Issue(user.ID, user.Email)
	if err != nil {
		return nil, common.ErrInternal
	}

	tctx, cancel = storeCtx(ctx, s.storeTimeout)
	err = repo.UpdateAuthToken(tctx, user.ID, tok)
	cancel()
	if err != nil {
		return nil, storeErr(err)
	}

	return &LoginResult{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    tok,
	}, nil
}

// Authenticate resolves a presented bearer token to its user. The token is
// decoded only to locate the row; validity comes from the whole presented
// string matching the stored copy byte for byte (constant-time).
//
// Failures are all errors.Is-matchable against common.ErrAuthenticationFailed:
// ErrMissingCredential for an empty token, ErrMalformedToken for an
// undecodable one, ErrInvalidCredential for a decodable token that matches
// no user or mismatches the stored copy.
func (s *AuthService) Authenticate(ctx context.Context, presented string) (*models.User, error) {
	if presented == "" {
		return nil, common.ErrMissingCredential
	}

	userID, _, err := token.Decode(presented)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	user, err := repo.GetByID(tctx, userID)
	cancel()
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredential
		}
		return nil, storeErr(err)
	}

	if !user.AuthToken.Valid {
		return nil, common.ErrInvalidCredential
	}
	if subtle.ConstantTimeCompare([]byte(user.AuthToken.String), []byte(presented)) != 1 {
		return nil, common.ErrInvalidCredential
	}

	return user, nil
}

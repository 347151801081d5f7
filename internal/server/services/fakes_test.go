package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mpetrenko/linkfolio/internal/dbx"
	"github.com/mpetrenko/linkfolio/internal/server/config"
	"github.com/mpetrenko/linkfolio/internal/server/models"
	analyticsrepo "github.com/mpetrenko/linkfolio/internal/server/repositories/analytics"
	linksrepo "github.com/mpetrenko/linkfolio/internal/server/repositories/links"
	usersrepo "github.com/mpetrenko/linkfolio/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{StoreTimeout: time.Second}
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	conflictField string
	conflictErr   error

	getOut *models.User
	getErr error

	updateErr error

	createdUsername string
	createdEmail    string
	updatedToken    string
	tokenUserID     int64
	updatedHash     string
	hashUserID      int64
	updatedIndustry string
	updatedBio      string
	updatedFullName string
	updatedTheme    string
	completedID     int64
	completedCalls  int
}

func (f *fakeUsersRepo) Create(ctx context.Context, username, email string) (*models.User, error) {
	f.createdUsername, f.createdEmail = username, email
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) FindConflict(ctx context.Context, username, email string) (string, error) {
	return f.conflictField, f.conflictErr
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) UpdateAuthToken(ctx context.Context, id int64, token string) error {
	f.tokenUserID, f.updatedToken = id, token
	return f.updateErr
}

func (f *fakeUsersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	f.hashUserID, f.updatedHash = id, hash
	return f.updateErr
}

func (f *fakeUsersRepo) UpdateIndustry(ctx context.Context, id int64, industry string) error {
	f.updatedIndustry = industry
	return f.updateErr
}

func (f *fakeUsersRepo) UpdateProfileInfo(ctx context.Context, id int64, bio, fullName string) error {
	f.updatedBio, f.updatedFullName = bio, fullName
	return f.updateErr
}

func (f *fakeUsersRepo) UpdateTheme(ctx context.Context, id int64, theme string) error {
	f.updatedTheme = theme
	return f.updateErr
}

func (f *fakeUsersRepo) MarkOnboardingComplete(ctx context.Context, id int64) error {
	f.completedID = id
	f.completedCalls++
	return f.updateErr
}

type fakeLinksRepo struct {
	deleteErr error
	insertErr error
	listOut   []models.SocialLink
	listErr   error

	deletedUserID int64
	deleteCalled  bool
	inserted      []models.SocialLink
}

func (f *fakeLinksRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	f.deletedUserID = userID
	f.deleteCalled = true
	return f.deleteErr
}

func (f *fakeLinksRepo) InsertAll(ctx context.Context, userID int64, links []models.SocialLink) error {
	if !f.deleteCalled {
		panic("InsertAll before DeleteByUserID")
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = links
	return nil
}

func (f *fakeLinksRepo) ListByUserID(ctx context.Context, userID int64) ([]models.SocialLink, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeAnalyticsRepo struct {
	insertErr error
	countOut  int64

	lastEvent *models.AnalyticsEvent
}

func (f *fakeAnalyticsRepo) Insert(ctx context.Context, event *models.AnalyticsEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.lastEvent = event
	return nil
}

func (f *fakeAnalyticsRepo) CountByProfile(ctx context.Context, profileUsername string) (int64, error) {
	return f.countOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	l *fakeLinksRepo
	a *fakeAnalyticsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Links(db dbx.DBTX) linksrepo.Repository       { return m.l }
func (m *fakeRepoManager) Analytics(db dbx.DBTX) analyticsrepo.Repository {
	return m.a
}

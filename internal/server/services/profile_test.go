package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/mpetrenko/linkfolio/internal/common"
	"github.com/mpetrenko/linkfolio/internal/server/models"
)

func TestGetProfile_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{
			ID:              4,
			Username:        "alice",
			FullName:        sql.NullString{String: "Alice A", Valid: true},
			Bio:             sql.NullString{String: "hi", Valid: true},
			Industry:        sql.NullString{String: "tech", Valid: true},
			ThemePreference: sql.NullString{String: "dark", Valid: true},
		}},
		l: &fakeLinksRepo{listOut: []models.SocialLink{
			{Platform: "github", URL: "https://github.com/alice", Position: 0},
			{Platform: "twitter", URL: "https://twitter.com/alice", Position: 1},
		}},
	}
	s := NewProfileService(db, rm, testConfig())

	p, err := s.GetProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if p.Username != "alice" || p.Name != "Alice A" || p.Theme != "dark" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if len(p.Links) != 2 || p.Links[0].Platform != "github" {
		t.Fatalf("unexpected links: %+v", p.Links)
	}
}

func TestGetProfile_NullFieldsBecomeEmpty(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: 4, Username: "alice"}},
		l: &fakeLinksRepo{},
	}
	s := NewProfileService(db, rm, testConfig())

	p, err := s.GetProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if p.Name != "" || p.Bio != "" || p.Industry != "" || p.Theme != "" {
		t.Fatalf("null columns must render empty: %+v", p)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrNotFound}}
	s := NewProfileService(db, rm, testConfig())

	if _, err := s.GetProfile(context.Background(), "ghost"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetProfile_LinksError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: 4, Username: "alice"}},
		l: &fakeLinksRepo{listErr: errBoom{}},
	}
	s := NewProfileService(db, rm, testConfig())

	if _, err := s.GetProfile(context.Background(), "alice"); err == nil {
		t.Fatal("expected links error")
	}
}

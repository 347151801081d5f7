package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mpetrenko/linkfolio/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "full_name", "bio", "industry",
		"theme_preference", "auth_token", "onboarding_completed", "onboarding_completed_at", "created_at",
	})
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(username,\s*email\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id,\s*created_at\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("alice", "alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	got, err := repo.Create(context.Background(), "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 || got.Username != "alice" || got.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_UniqueViolationMapsToDuplicateField(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("alice", "alice@example.com").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), "alice", "alice@example.com")
	var dup *common.DuplicateFieldError
	if !errors.As(err, &dup) || dup.Field != "email" {
		t.Fatalf("want DuplicateFieldError(email), got %v", err)
	}
}

func TestFindConflict(t *testing.T) {
	tests := []struct {
		name        string
		rowUsername string
		rowEmail    string
		noRows      bool
		want        string
	}{
		{name: "username collision", rowUsername: "alice", rowEmail: "other@example.com", want: "username"},
		{name: "email collision", rowUsername: "someone", rowEmail: "alice@example.com", want: "email"},
		{name: "both collide, username wins", rowUsername: "alice", rowEmail: "alice@example.com", want: "username"},
		{name: "no collision", noRows: true, want: ""},
	}

	q := `(?s)^\s*SELECT\s+username,\s*email\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s+OR\s+email\s*=\s*\$2\s+LIMIT\s+1\s*$`

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			exp := mock.ExpectQuery(q).WithArgs("alice", "alice@example.com")
			if tc.noRows {
				exp.WillReturnError(sql.ErrNoRows)
			} else {
				exp.WillReturnRows(sqlmock.NewRows([]string{"username", "email"}).
					AddRow(tc.rowUsername, tc.rowEmail))
			}

			got, err := repo.FindConflict(context.Background(), "alice", "alice@example.com")
			if err != nil {
				t.Fatalf("FindConflict error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := userRows().AddRow(
		int64(1), "alice", "alice@example.com", nil, "Alice A", "hi", "tech",
		"dark", "tok", true, time.Now(), time.Now())
	mock.ExpectQuery(`(?s)SELECT .* FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != 1 || got.Username != "alice" || !got.OnboardingCompleted {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.PasswordHash.Valid {
		t.Fatal("password hash must be NULL")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .* FROM users WHERE email = \$1`).
		WithArgs("x@y.z").
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByEmail(context.Background(), "x@y.z")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdateAuthToken_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET auth_token = \$1 WHERE id = \$2`).
		WithArgs("tok", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateAuthToken(context.Background(), 1, "tok"); err != nil {
		t.Fatalf("UpdateAuthToken error: %v", err)
	}
}

func TestUpdatePasswordHash_MissingUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET password_hash = \$1 WHERE id = \$2`).
		WithArgs("hash", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePasswordHash(context.Background(), 42, "hash")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound for zero rows, got %v", err)
	}
}

func TestUpdateProfileInfo_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET bio = \$1, full_name = \$2 WHERE id = \$3`).
		WithArgs("my bio", "Alice A", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateProfileInfo(context.Background(), 1, "my bio", "Alice A"); err != nil {
		t.Fatalf("UpdateProfileInfo error: %v", err)
	}
}

func TestMarkOnboardingComplete_KeepsFirstTimestamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+users\s+SET\s+onboarding_completed\s*=\s*TRUE,\s*onboarding_completed_at\s*=\s*COALESCE\(onboarding_completed_at,\s*NOW\(\)\)\s+WHERE\s+id\s*=\s*\$1`
	mock.ExpectExec(q).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkOnboardingComplete(context.Background(), 1); err != nil {
		t.Fatalf("MarkOnboardingComplete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

// Package models holds the persistence-level data structures shared by
// repositories and services.
package models

import (
	"database/sql"
	"time"
)

// User is one account row. Username and email are globally unique; the
// username is immutable once set at account_setup.
//
// PasswordHash and AuthToken stay NULL until the corresponding onboarding
// steps run. AuthToken holds the single active bearer credential; reissuing
// overwrites it, revoking the previous one.
type User struct {
	ID                    int64
	Username              string
	Email                 string
	PasswordHash          sql.NullString
	FullName              sql.NullString
	Bio                   sql.NullString
	Industry              sql.NullString
	ThemePreference       sql.NullString
	AuthToken             sql.NullString
	OnboardingCompleted   bool
	OnboardingCompletedAt sql.NullTime
	CreatedAt             time.Time
}

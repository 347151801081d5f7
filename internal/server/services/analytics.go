package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mpetrenko/linkfolio/internal/common"
	"github.com/mpetrenko/linkfolio/internal/server/config"
	"github.com/mpetrenko/linkfolio/internal/server/models"
	"github.com/mpetrenko/linkfolio/internal/server/repositories/repomanager"
)

// RecordEventInput is the raw material for one analytics row. Only
// ProfileUsername, SessionID, and EventType are mandatory; the rest is
// best-effort visitor metadata.
type RecordEventInput struct {
	ProfileUsername string
	VisitorID       string
	SessionID       string
	EventType       string
	LinkData        *models.LinkData
	Referrer        string
	UserAgent       string
	Country         string
	City            string
	Device          string
	Browser         string
}

// AnalyticsService ingests visitor interaction events. Writes are
// append-only and deliberately unchecked against the users table: an event
// may reference a username that does not (or no longer) exists.
type AnalyticsService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	storeTimeout time.Duration
}

// NewAnalyticsService constructs an AnalyticsService using repositories and
// server config.
func NewAnalyticsService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{
		db:           db,
		repomanager:  m,
		storeTimeout: cfg.StoreTimeout,
	}
}

// Record validates the input, assigns a fresh event id, and appends the row.
// It returns the id of the stored event.
func (s *AnalyticsService) Record(ctx context.Context, in *RecordEventInput) (string, error) {
	if in.ProfileUsername == "" {
		return "", common.NewValidationError("profile_username is required")
	}
	if in.SessionID == "" {
		return "", common.NewValidationError("session_id is required")
	}
	switch in.EventType {
	case models.EventPageView, models.EventLinkClick, models.EventShare:
	case "":
		return "", common.NewValidationError("event_type is required")
	default:
		return "", common.NewValidationError("invalid event_type: %q", in.EventType)
	}

	event := &models.AnalyticsEvent{
		ID:              uuid.NewString(),
		ProfileUsername: in.ProfileUsername,
		VisitorID:       nullStr(in.VisitorID),
		SessionID:       in.SessionID,
		EventType:       in.EventType,
		Referrer:        nullStr(in.Referrer),
		UserAgent:       nullStr(in.UserAgent),
		Country:         nullStr(in.Country),
		City:            nullStr(in.City),
		Device:          nullStr(in.Device),
		Browser:         nullStr(in.Browser),
	}
	if in.LinkData != nil {
		payload, err := json.Marshal(in.LinkData)
		if err != nil {
			return "", common.ErrInternal
		}
		event.LinkData = nullStr(string(payload))
	}

	repo := s.repomanager.Analytics(s.db)
	tctx, cancel := storeCtx(ctx, s.storeTimeout)
	defer cancel()
	if err := repo.Insert(tctx, event); err != nil {
		return "", storeErr(err)
	}
	return event.ID, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

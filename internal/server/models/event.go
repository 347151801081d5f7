package models

import (
	"database/sql"
	"time"
)

// Analytics event types accepted by the ingestion path.
const (
	EventPageView  = "page_view"
	EventLinkClick = "link_click"
	EventShare     = "share"
)

// LinkData is the optional structured payload attached to link_click events.
// It is stored serialized in a single column.
type LinkData struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// AnalyticsEvent is one recorded visitor interaction. Rows are append-only.
// ProfileUsername intentionally has no foreign key: events may reference
// usernames that do not (or no longer) exist.
type AnalyticsEvent struct {
	ID              string
	ProfileUsername string
	VisitorID       sql.NullString
	SessionID       string
	EventType       string
	LinkData        sql.NullString
	Referrer        sql.NullString
	UserAgent       sql.NullString
	Country         sql.NullString
	City            sql.NullString
	Device          sql.NullString
	Browser         sql.NullString
	CreatedAt       time.Time
}

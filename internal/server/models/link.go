package models

// SocialLink is one outbound link on a user's profile page. The links step
// replaces a user's full set atomically; Position preserves the submitted
// order.
type SocialLink struct {
	UserID     int64
	Platform   string
	URL        string
	ButtonText string
	Position   int
}

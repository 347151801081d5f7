// Package http exposes the service layer over an HTTP/JSON surface:
// login, the onboarding step endpoint, the public profile read path, and
// analytics ingestion. Every response uses the {success, message} envelope.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mpetrenko/linkfolio/internal/common"
	"github.com/mpetrenko/linkfolio/internal/logging"
	"github.com/mpetrenko/linkfolio/internal/netx"
	"github.com/mpetrenko/linkfolio/internal/server/models"
	"github.com/mpetrenko/linkfolio/internal/server/services"
)

// AuthProvider is the slice of the auth service the handlers need.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// OnboardingProvider is the slice of the onboarding service the handlers need.
type OnboardingProvider interface {
	AccountSetup(ctx context.Context, username, email string) (*services.AccountSetupResult, error)
	SetPassword(ctx context.Context, userID int64, password string) error
	SetIndustry(ctx context.Context, userID int64, industry string) error
	SetProfileInfo(ctx context.Context, userID int64, bio, fullName string) error
	ReplaceLinks(ctx context.Context, userID int64, links []models.SocialLink) error
	SetTheme(ctx context.Context, userID int64, theme string) error
	Complete(ctx context.Context, userID int64) error
}

// ProfileProvider is the slice of the profile service the handlers need.
type ProfileProvider interface {
	GetProfile(ctx context.Context, username string) (*services.Profile, error)
}

// AnalyticsProvider is the slice of the analytics service the handlers need.
type AnalyticsProvider interface {
	Record(ctx context.Context, in *services.RecordEventInput) (string, error)
}

// Handler bundles the HTTP endpoints and their service dependencies.
type Handler struct {
	auth       AuthProvider
	onboarding OnboardingProvider
	profile    ProfileProvider
	analytics  AnalyticsProvider
	log        logging.Logger
}

// NewHandler constructs a Handler.
func NewHandler(auth AuthProvider, onboarding OnboardingProvider, profile ProfileProvider, analytics AnalyticsProvider, log logging.Logger) *Handler {
	return &Handler{
		auth:       auth,
		onboarding: onboarding,
		profile:    profile,
		analytics:  analytics,
		log:        log.With("module", "http"),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, common.NewValidationError("invalid JSON body"))
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"user":    loginUser{ID: res.UserID, Email: res.Email, Username: res.Username},
		"token":   res.Token,
	})
}

type onboardingRequest struct {
	Step string          `json:"step"`
	Data json.RawMessage `json:"data"`
}

type linkPayload struct {
	Platform   string `json:"platform"`
	URL        string `json:"url"`
	ButtonText string `json:"buttonText"`
}

// Onboarding handles POST /api/onboarding. The account_setup step is public;
// every other step resolves the caller through the bearer token and ignores
// any identity fields in the body.
func (h *Handler) Onboarding(w http.ResponseWriter, r *http.Request) {
	var req onboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, common.NewValidationError("invalid JSON body"))
		return
	}

	step, err := services.ParseStep(req.Step)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if step == services.StepAccountSetup {
		h.accountSetup(w, r, req.Data)
		return
	}

	user, err := h.auth.Authenticate(r.Context(), bearerToken(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.authenticatedStep(w, r, step, user.ID, req.Data)
}

func (h *Handler) accountSetup(w http.ResponseWriter, r *http.Request, data json.RawMessage) {
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := unmarshalData(data, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}

	res, err := h.onboarding.AccountSetup(r.Context(), payload.Username, payload.Email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Account created successfully",
		"userId":  res.UserID,
		"token":   res.Token,
	})
}

func (h *Handler) authenticatedStep(w http.ResponseWriter, r *http.Request, step services.Step, userID int64, data json.RawMessage) {
	var message string
	var err error

	switch step {
	case services.StepPassword:
		var payload struct {
			Password string `json:"password"`
		}
		if err = unmarshalData(data, &payload); err == nil {
			err = h.onboarding.SetPassword(r.Context(), userID, payload.Password)
		}
		message = "Password set successfully"

	case services.StepIndustry:
		var payload struct {
			Industry string `json:"industry"`
		}
		if err = unmarshalData(data, &payload); err == nil {
			err = h.onboarding.SetIndustry(r.Context(), userID, payload.Industry)
		}
		message = "Industry saved"

	case services.StepProfileInfo:
		var payload struct {
			Name string `json:"name"`
			Bio  string `json:"bio"`
		}
		if err = unmarshalData(data, &payload); err == nil {
			err = h.onboarding.SetProfileInfo(r.Context(), userID, payload.Bio, payload.Name)
		}
		message = "Profile info saved"

	case services.StepLinks:
		var payload struct {
			Links []linkPayload `json:"links"`
		}
		if err = unmarshalData(data, &payload); err == nil {
			links := make([]models.SocialLink, 0, len(payload.Links))
			for _, l := range payload.Links {
				links = append(links, models.SocialLink{
					Platform:   l.Platform,
					URL:        l.URL,
					ButtonText: l.ButtonText,
				})
			}
			err = h.onboarding.ReplaceLinks(r.Context(), userID, links)
		}
		message = "Links saved"

	case services.StepTheme:
		var payload struct {
			Theme string `json:"theme"`
		}
		if err = unmarshalData(data, &payload); err == nil {
			err = h.onboarding.SetTheme(r.Context(), userID, payload.Theme)
		}
		message = "Theme saved"

	case services.StepComplete:
		err = h.onboarding.Complete(r.Context(), userID)
		message = "Onboarding completed"
	}

	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": message})
}

type profileLink struct {
	Platform   string `json:"platform"`
	URL        string `json:"url"`
	ButtonText string `json:"buttonText"`
}

// GetProfile handles GET /api/profile/{username}.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	p, err := h.profile.GetProfile(r.Context(), username)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	links := make([]profileLink, 0, len(p.Links))
	for _, l := range p.Links {
		links = append(links, profileLink{Platform: l.Platform, URL: l.URL, ButtonText: l.ButtonText})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"profile": map[string]any{
			"username":    p.Username,
			"name":        p.Name,
			"bio":         p.Bio,
			"industry":    p.Industry,
			"theme":       p.Theme,
			"socialLinks": links,
		},
	})
}

type analyticsRequest struct {
	ProfileUsername string           `json:"profileUsername"`
	VisitorID       string           `json:"visitorId"`
	SessionID       string           `json:"sessionId"`
	EventType       string           `json:"eventType"`
	LinkData        *models.LinkData `json:"linkData"`
	Referrer        string           `json:"referrer"`
	UserAgent       string           `json:"userAgent"`
	Country         string           `json:"country"`
	City            string           `json:"city"`
	Device          string           `json:"device"`
	Browser         string           `json:"browser"`
}

// RecordEvent handles POST /api/analytics. Optional fields are stored as the
// sender provided them; only a userAgent the body leaves empty falls back to
// the request header.
func (h *Handler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req analyticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, common.NewValidationError("invalid JSON body"))
		return
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = r.UserAgent()
	}

	in := &services.RecordEventInput{
		ProfileUsername: req.ProfileUsername,
		VisitorID:       req.VisitorID,
		SessionID:       req.SessionID,
		EventType:       req.EventType,
		LinkData:        req.LinkData,
		Referrer:        req.Referrer,
		UserAgent:       netx.TruncateUserAgent(userAgent),
		Country:         req.Country,
		City:            req.City,
		Device:          req.Device,
		Browser:         req.Browser,
	}

	if _, err := h.analytics.Record(r.Context(), in); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Event recorded"})
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// bearerToken extracts the credential from the Authorization header;
// "" when the header is absent or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, common.BearerPrefix)
}

// unmarshalData decodes a step's data payload; an absent payload is treated
// as an empty object so steps without input (complete) stay valid.
func unmarshalData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return common.NewValidationError("invalid step data")
	}
	return nil
}

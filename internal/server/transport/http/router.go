package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mpetrenko/linkfolio/internal/logging"
	"github.com/mpetrenko/linkfolio/internal/netx"
	"github.com/mpetrenko/linkfolio/internal/server/config"
)

// NewRouter assembles the full HTTP surface around a Handler.
func NewRouter(h *Handler, cfg *config.Config, log logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(cfg.CORSAllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(requestLogger(log))

	r.Get("/healthz", h.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/onboarding", h.Onboarding)
		r.Get("/profile/{username}", h.GetProfile)
		r.Post("/analytics", h.RecordEvent)
	})

	return r
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}

// requestLogger logs one line per completed request with method, path,
// client address, status, and duration.
func requestLogger(log logging.Logger) func(http.Handler) http.Handler {
	l := log.With("module", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			l.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"ip", netx.ClientIP(r),
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

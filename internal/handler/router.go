package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mentra/group-booking/internal/middleware"
	"github.com/mentra/group-booking/pkg/logger"
)

// Handlers groups the route handlers mounted by NewRouter.
type Handlers struct {
	Health  *HealthHandler
	Chat    *ChatHandler
	Groups  *GroupHandler
	Booking *BookingHandler
	Handoff *HandoffHandler
}

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	TherapistJWTSecret string
}

// NewRouter builds the API router. Every API route is served both under /api
// and at the root path.
func NewRouter(h Handlers, opts RouterOptions, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log.Component("http")))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(opts.CORSAllowedOrigins))

	r.Get("/health", h.Health.Health)
	r.Get("/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// One limiter shared by both mounts so /api and root count together.
	limited := middleware.RateLimit(opts.RateLimitRequests, opts.RateLimitWindow)
	therapist := middleware.TherapistAuth(opts.TherapistJWTSecret)

	routes := func(r chi.Router) {
		r.With(limited).Post("/chat", h.Chat.Chat)
		r.With(limited).Post("/chat/stream", h.Chat.Stream)
		r.With(limited).Post("/insights", h.Chat.Insights)

		r.Get("/groups", h.Groups.List)
		r.Post("/groups/slots/generate", h.Groups.Slots)
		r.Get("/groups/{id}", h.Groups.Get)

		r.Post("/booking", h.Booking.Create)
		r.Get("/booking/{id}", h.Booking.Get)

		r.With(therapist, limited).Get("/handoff/{groupId}", h.Handoff.Get)
	}

	r.Route("/api", routes)
	r.Group(routes)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

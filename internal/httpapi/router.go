package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20 // 1MB

// Pinger is the slice of the cache client the health route needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// NewRouter assembles the full inbound surface. The webhook route is
// server-to-server and stays outside the CORS group.
func NewRouter(
	hold *HoldHandler,
	session *SessionHandler,
	webhook *WebhookHandler,
	proxy *ProxyHandler,
	pinger Pinger,
	allowedOrigins []string,
	requestTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := pinger.Ping(req.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "cache": "unreachable"})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(CORSMiddleware(allowedOrigins))

		// preflight requests are answered by the CORS middleware; the
		// explicit Options routes only make them routable
		r.Route("/api/hold", func(r chi.Router) {
			r.Post("/", hold.Hold)
			r.Get("/", hold.Health)
			r.Options("/", noContent)
		})
		r.Route("/api/session", func(r chi.Router) {
			r.Post("/", session.Hold)
			r.Options("/", noContent)
		})
		r.Route("/api/retrieve", func(r chi.Router) {
			r.Get("/", session.Retrieve)
			r.Options("/", noContent)
		})
		r.Route("/api/proxy", func(r chi.Router) {
			r.Post("/", proxy.Forward)
			r.Get("/", proxy.Health)
			r.Options("/", noContent)
		})
	})

	r.Post("/api/webhook", webhook.Receive)

	return r
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

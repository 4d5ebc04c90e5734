package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: handlers decode requests and map
// service errors, all behavior lives in the app layer.
func NewRouter(s *Server, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	// Health endpoint for infra checks.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/user/{userID}", s.getUser)
	r.Get("/user/{userID}/trips", s.listUserTrips)
	r.Get("/trip/{tripID}", s.getTrip)

	r.Post("/find/users", s.findUsers)
	r.Post("/find/trips", s.findTrips)

	r.Post("/create/user", s.createUser)
	r.Post("/create/trip", s.createTrip)

	r.Post("/trip/{tripID}/participants/{userID}", s.addParticipant)
	r.Delete("/trip/{tripID}/participants/{userID}", s.removeParticipant)
	r.Post("/trip/{tripID}/returned/{userID}", s.markReturned)
	r.Delete("/trip/{tripID}/returned/{userID}", s.markUnaccounted)

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}

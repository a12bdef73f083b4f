package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"shutterbook/internal/availability"
	"shutterbook/internal/db"
)

// HTTPServer exposes the availability engine to the booking and search
// collaborators.
type HTTPServer struct {
	server   *http.Server
	svc      *availability.Service
	db       *db.DB
	log      zerolog.Logger
	apiKey   string
	limiter  *rate.Limiter
	validate *validator.Validate
}

// NewHTTPServer wires routes, auth and rate limiting.
func NewHTTPServer(port int, apiKey string, rps float64, burst int, svc *availability.Service, database *db.DB, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		svc:      svc,
		db:       database,
		log:      logger.With().Str("component", "api").Logger(),
		apiKey:   apiKey,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/photographers/available", s.handleFleetAvailability)
	mux.HandleFunc("/api/photographers/", s.handlePhotographerAvailability)
	mux.HandleFunc("/api/reports/availability", s.handleAvailabilityReport)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.middleware(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctxShutdown)
	}()

	s.log.Info().Str("addr", s.server.Addr).Msg("API server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Handler exposes the configured handler for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		if s.apiKey != "" && r.Header.Get("X-Api-Key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		started := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(started)).
			Msg("request handled")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Package server hosts the checkup endpoint for thin clients that keep
// their checklist state locally but delegate the generation call. Access is
// gated by a per-caller daily quota so one client cannot drain the shared
// provider budget.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/embermill/daycheck/internal/checklist"
	"github.com/embermill/daycheck/internal/review"
)

// quotaMessage is returned with a 429 once a caller's daily budget is spent.
const quotaMessage = "daily checkup limit reached, come back tomorrow"

// QuotaStore tracks per-caller request budgets keyed by calendar day.
type QuotaStore interface {
	Consume(caller, day string, limit int) (bool, error)
}

// Server wires the checkup reporter behind an HTTP boundary.
type Server struct {
	reporter   *review.Reporter
	quota      QuotaStore
	dailyLimit int
	log        zerolog.Logger
	now        func() time.Time
}

// New builds a Server around the given generator and quota store.
func New(gen review.Generator, quota QuotaStore, dailyLimit int, log zerolog.Logger) *Server {
	return &Server{
		reporter:   review.NewReporter(gen),
		quota:      quota,
		dailyLimit: dailyLimit,
		log:        log,
		now:        time.Now,
	}
}

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/api/checkup", s.handleCheckup).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

// checkupRequest is the POST /api/checkup body. Both fields are required;
// pointers distinguish absent from zero-valued.
type checkupRequest struct {
	Stats   *checklist.DailyStats  `json:"stats"`
	History *review.CheckupHistory `json:"history"`
}

// checkupResponse is the successful reply.
type checkupResponse struct {
	Review review.CheckupReview `json:"review"`
}

func (s *Server) handleCheckup(w http.ResponseWriter, r *http.Request) {
	caller := clientID(r)
	today := s.now().Format(checklist.DateLayout)

	allowed, err := s.quota.Consume(caller, today, s.dailyLimit)
	if err != nil {
		s.log.Error().Err(err).Str("caller", caller).Msg("quota check failed")
		s.writeError(w, http.StatusInternalServerError, "quota check failed")
		return
	}
	if !allowed {
		s.writeError(w, http.StatusTooManyRequests, quotaMessage)
		return
	}

	var req checkupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Stats == nil || req.History == nil {
		s.writeError(w, http.StatusBadRequest, "stats and history are required")
		return
	}

	st, err := s.reporter.Analyze(r.Context(), *req.Stats, review.State{History: *req.History})
	if err != nil {
		s.log.Warn().Err(err).Str("caller", caller).Msg("checkup failed")
		s.writeError(w, statusForError(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, checkupResponse{Review: *st.TodayReview})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusForError maps generation failures to HTTP statuses for the caller.
// A missing provider configuration is the server's problem (503); anything
// else is the upstream provider failing (502).
func statusForError(err error) int {
	if errors.Is(err, review.ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

// clientID identifies the caller for quota purposes: the first hop of
// X-Forwarded-For when present, otherwise the remote address.
func clientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// ListenAndServe runs the server until ctx is cancelled or the listener
// fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Msg("checkup server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

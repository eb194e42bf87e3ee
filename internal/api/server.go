package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"velour/internal/schedule"
)

// SlotService is the read surface of the availability engine consumed
// by the HTTP layer.
type SlotService interface {
	DaySlots(ctx context.Context, staffID int64, date time.Time, durationMin int) ([]schedule.Slot, error)
	AllStaffDaySlots(ctx context.Context, date time.Time, durationMin int) (map[int64][]schedule.Slot, error)
	AvailableDates(ctx context.Context, staffID int64, year int, month time.Month, durationMin int) ([]string, error)
}

// ReportBuilder renders a month availability report.
type ReportBuilder interface {
	WriteMonthReport(ctx context.Context, w io.Writer, year int, month time.Month, durationMin int) error
}

// HTTPServer serves the availability read API.
type HTTPServer struct {
	svc         SlotService
	reports     ReportBuilder
	logger      *zerolog.Logger
	limiter     *rate.Limiter
	defaultDurn int
}

// NewHTTPServer constructs the API server. reports may be nil; the
// report endpoint then returns 503.
func NewHTTPServer(svc SlotService, reports ReportBuilder, logger *zerolog.Logger, limiter *rate.Limiter, defaultDurationMin int) *HTTPServer {
	if defaultDurationMin <= 0 {
		defaultDurationMin = 60
	}
	return &HTTPServer{
		svc:         svc,
		reports:     reports,
		logger:      logger,
		limiter:     limiter,
		defaultDurn: defaultDurationMin,
	}
}

// Handler returns the routed handler with rate limiting applied.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/slots", s.handleDaySlots)
	mux.HandleFunc("/api/v1/slots/all", s.handleAllStaffSlots)
	mux.HandleFunc("/api/v1/availability", s.handleMonthAvailability)
	mux.HandleFunc("/api/v1/reports/availability", s.handleAvailabilityReport)
	return s.rateLimit(mux)
}

// Serve runs the API server until ctx is cancelled.
func (s *HTTPServer) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
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

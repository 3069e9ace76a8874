// Package api exposes the calculation engine over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/calculation"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/config"
	"github.com/mtmanju/mtm-money-maths-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server serves the calculation API.
type Server struct {
	engine  *calculation.Engine
	logger  *slog.Logger
	limiter *RateLimiter
}

// NewServer creates a server over engine. A zero rate limit disables rate
// limiting; a nil logger uses slog.Default().
func NewServer(engine *calculation.Engine, logger *slog.Logger, cfg config.ServerConfig) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: engine, logger: logger}
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit, cfg.Burst)
	}
	return s
}

// Close releases the rate limiter.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}
		r.Get("/calculators", s.handleCalculators)
		r.Post("/cagr/calculate", s.handleCAGR)
		r.Post("/calculate/{calculator}", s.handleCalculate)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type cagrRequest struct {
	InitialValue *decimal.Decimal `json:"initialValue"`
	FinalValue   *decimal.Decimal `json:"finalValue"`
	Years        *decimal.Decimal `json:"years"`
}

type cagrResponse struct {
	CAGR           float64 `json:"cagr"`
	TotalReturn    float64 `json:"totalReturn"`
	AbsoluteReturn float64 `json:"absoluteReturn"`
}

func (s *Server) handleCAGR(w http.ResponseWriter, r *http.Request) {
	var req cagrRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fields := []struct {
		name string
		v    *decimal.Decimal
	}{
		{"initialValue", req.InitialValue},
		{"finalValue", req.FinalValue},
		{"years", req.Years},
	}
	for _, f := range fields {
		if f.v == nil {
			writeError(w, http.StatusBadRequest, f.name+" is required")
			return
		}
	}

	res, err := s.engine.CAGR(domain.CAGRParams{
		InitialValue: *req.InitialValue,
		FinalValue:   *req.FinalValue,
		Years:        *req.Years,
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cagrResponse{
		CAGR:           res.CAGR.InexactFloat64(),
		TotalReturn:    res.TotalReturn.InexactFloat64(),
		AbsoluteReturn: res.AbsoluteReturn.InexactFloat64(),
	})
}

func (s *Server) handleCalculators(w http.ResponseWriter, r *http.Request) {
	type info struct {
		Name    string `json:"name"`
		Summary string `json:"summary"`
	}
	calcs := s.engine.Calculators()
	out := make([]info, 0, len(calcs))
	for _, c := range calcs {
		out = append(out, info{Name: c.Name, Summary: c.Summary})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCalculate runs any calculator on snake_case JSON parameters and
// returns the full report.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "calculator")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	report, err := s.engine.Run(r.Context(), name, func(v any) error {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, calculation.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, calculation.ErrUnknownCalculator):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "calculation failed",
			slog.String("id", RequestID(r.Context())), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

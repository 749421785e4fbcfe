package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lotogen/app"
	"lotogen/domain/core"
	"lotogen/domain/filter"
	"lotogen/domain/lottery"
	"lotogen/internal"
	"lotogen/internal/config"
	"lotogen/internal/errors"
)

// Server exposes statistics, generation and stored runs as a JSON API
type Server struct {
	router     *chi.Mux
	generation *app.GenerationService
	stats      *app.StatsService
	defaults   config.GeneratorConfig
	filter     filter.Config
	persist    bool
	logger     *internal.Logger
}

// Deps holds what the API serves
type Deps struct {
	Generation *app.GenerationService
	Stats      *app.StatsService
	Defaults   config.GeneratorConfig
	Filter     *filter.Config // nil means filter.DefaultConfig
	Persist    bool           // store generated runs unless the request opts out
	Logger     *internal.Logger
}

// NewServer creates the API router
func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	base := filter.DefaultConfig()
	if deps.Filter != nil {
		base = *deps.Filter
	}
	s := &Server{
		router:     chi.NewRouter(),
		generation: deps.Generation,
		stats:      deps.Stats,
		defaults:   deps.Defaults,
		filter:     base,
		persist:    deps.Persist,
		logger:     logger.With("API"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	if s.logger.Enabled(internal.LogLevelDebug) {
		s.router.Use(middleware.Logger)
	}
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/filter/derive", s.handleDeriveFilter)
		r.Post("/generate", s.handleGenerate)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Post("/runs/{id}/evaluate", s.handleEvaluate)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	window, err := queryInt(r, "window", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.stats.Report(r.Context(), window)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDeriveFilter(w http.ResponseWriter, r *http.Request) {
	window, err := queryInt(r, "window", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	low, err := queryFloat(r, "low", app.DefaultLowPercentile)
	if err != nil {
		s.writeError(w, err)
		return
	}
	high, err := queryFloat(r, "high", app.DefaultHighPercentile)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cfg, err := s.stats.DeriveFilter(r.Context(), window, low, high)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body GenerateBody
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, errors.InvalidInput(fmt.Sprintf("malformed body: %v", err)))
			return
		}
	}
	req, err := body.toRequest(s.defaults, s.filter, s.persist)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	if s.defaults.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.defaults.Timeout)
		defer cancel()
	}

	result, err := s.generation.Generate(ctx, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		s.writeError(w, err)
		return
	}
	runs, err := s.generation.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, core.NewInvalidRequestError(err.Error()))
		return
	}
	rec, err := s.generation.GetRun(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, core.NewInvalidRequestError(err.Error()))
		return
	}
	var body EvaluateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, errors.InvalidInput(fmt.Sprintf("malformed body: %v", err)))
		return
	}
	result, err := lottery.NewDraw(0, time.Time{}, body.Numbers)
	if err != nil {
		s.writeError(w, core.NewInvalidRequestError(err.Error()))
		return
	}
	hits, err := s.generation.EvaluateRun(r.Context(), id, result)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := EvaluateResponse{RunID: id.String(), Hits: hits}
	for _, h := range hits {
		if h > resp.Best {
			resp.Best = h
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.Classify(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	} else {
		s.logger.Debug("request rejected (%s): %v", code, err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewInvalidRequestError(fmt.Sprintf("%s must be an integer, got %q", key, raw))
	}
	return v, nil
}

func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewInvalidRequestError(fmt.Sprintf("%s must be a number, got %q", key, raw))
	}
	return v, nil
}

// Package ui serves the statistics and run reports as HTML pages.
package ui

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"lotogen/adapters/excel"
	"lotogen/app"
	"lotogen/domain/core"
	"lotogen/domain/run"
	"lotogen/internal"
	"lotogen/internal/errors"
	"lotogen/internal/report"
)

// Server represents the report web server
type Server struct {
	router     *gin.Engine
	stats      *app.StatsService
	generation *app.GenerationService
	window     int
	logger     *internal.Logger
}

// NewServer creates a new web server instance. generation may be nil, in
// which case only the statistics pages are served.
func NewServer(stats *app.StatsService, generation *app.GenerationService, window int, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:     gin.Default(),
		stats:      stats,
		generation: generation,
		window:     window,
		logger:     logger.With("UI"),
	}
	s.setupRoutes()
	return s
}

// Router exposes the gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Serving reports on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/", s.handleIndex)
	s.router.GET("/report.md", s.handleIndexMarkdown)

	if s.generation != nil {
		s.router.GET("/runs/:id", s.handleRun)
		s.router.GET("/runs/:id/report.md", s.handleRunMarkdown)
		s.router.GET("/runs/:id/games.xlsx", s.handleRunExport)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	in, ok := s.indexInput(c)
	if !ok {
		return
	}
	s.renderPage(c, in)
}

func (s *Server) handleIndexMarkdown(c *gin.Context) {
	in, ok := s.indexInput(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", report.Markdown(in))
}

func (s *Server) handleRun(c *gin.Context) {
	r, ok := s.loadRun(c)
	if !ok {
		return
	}
	s.renderPage(c, report.Input{Title: "Run " + r.ID.String(), Run: r})
}

func (s *Server) handleRunMarkdown(c *gin.Context) {
	r, ok := s.loadRun(c)
	if !ok {
		return
	}
	md := report.Markdown(report.Input{Title: "Run " + r.ID.String(), Run: r})
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", md)
}

func (s *Server) handleRunExport(c *gin.Context) {
	r, ok := s.loadRun(c)
	if !ok {
		return
	}
	dir, err := os.MkdirTemp("", "lotogen-export-")
	if err != nil {
		s.abort(c, err)
		return
	}
	defer os.RemoveAll(dir)

	name := fmt.Sprintf("run-%s.xlsx", r.ID)
	path := filepath.Join(dir, name)
	if err := excel.WriteGames(path, r); err != nil {
		s.abort(c, err)
		return
	}
	c.FileAttachment(path, name)
}

// indexInput builds the landing report: statistics plus the newest stored run
func (s *Server) indexInput(c *gin.Context) (report.Input, bool) {
	window := s.window
	if raw := c.Query("window"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w < 0 {
			s.abort(c, core.NewInvalidRequestError(fmt.Sprintf("window must be a non-negative integer, got %q", raw)))
			return report.Input{}, false
		}
		window = w
	}

	statsReport, err := s.stats.Report(c.Request.Context(), window)
	if err != nil {
		s.abort(c, err)
		return report.Input{}, false
	}
	in := report.Input{Stats: statsReport}

	if s.generation != nil {
		summaries, err := s.generation.ListRuns(c.Request.Context(), 1)
		if err != nil {
			s.logger.Warn("Listing runs failed: %v", err)
		} else if len(summaries) > 0 {
			latest, err := s.generation.GetRun(c.Request.Context(), summaries[0].ID)
			if err != nil {
				s.logger.Warn("Loading run %s failed: %v", summaries[0].ID, err)
			} else {
				in.Run = latest
			}
		}
	}
	return in, true
}

func (s *Server) loadRun(c *gin.Context) (*run.Run, bool) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		s.abort(c, core.NewInvalidRequestError(err.Error()))
		return nil, false
	}
	r, err := s.generation.GetRun(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err)
		return nil, false
	}
	return r, true
}

func (s *Server) abort(c *gin.Context, err error) {
	code := errors.Classify(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": code})
}

package ui

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"lotogen/internal/report"
)

const defaultTitle = "Lotofácil report"

// renderPage renders a report as a full HTML page
func (s *Server) renderPage(c *gin.Context, in report.Input) {
	title := in.Title
	if title == "" {
		title = defaultTitle
	}

	// Render to a buffer first so template errors never produce half a page
	page, err := report.Page(title, report.Markdown(in))
	if err != nil {
		s.logger.Error("Template error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(http.StatusOK)
	if _, err := bytes.NewReader(page).WriteTo(c.Writer); err != nil {
		s.logger.Warn("Error writing page response: %v", err)
	}
}

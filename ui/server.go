package ui

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server is the gin web server for the report page and its JSON API
type Server struct {
	router  *gin.Engine
	handler *reportHandler
	http    *http.Server
}

// NewServer creates a new web server instance with routes installed
func NewServer(deps Dependencies) (*Server, error) {
	handler, err := newReportHandler(deps)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(handler.logger))
	router.MaxMultipartMemory = 32 << 20

	s := &Server{
		router:  router,
		handler: handler,
		http: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/report", s.handleReport)
	s.router.POST("/api/report", s.handleReportJSON)
	s.router.GET("/healthz", s.handleHealth)
}

// Handler exposes the router, used by tests and by custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.http.Addr = addr
	s.handler.logger.Info("Starting report server on http://localhost%s", addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting uploads and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleIndex serves the upload page
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, s.handler.page())
}

// handleReport renders the full report page for an uploaded file
func (s *Server) handleReport(c *gin.Context) {
	rep, err := s.handler.processUpload(c.Writer, c.Request)
	if err != nil {
		c.Error(err)
	}
	s.renderTemplate(c, statusFor(err), s.handler.reportPage(rep, err))
}

// handleReportJSON returns the distributions and the normalized table as JSON
func (s *Server) handleReportJSON(c *gin.Context) {
	rep, err := s.handler.processUpload(c.Writer, c.Request)
	if err != nil {
		c.Error(err)
		c.JSON(statusFor(err), gin.H(errorPayload(rep, err)))
		return
	}
	c.JSON(http.StatusOK, gin.H(reportPayload(rep)))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.handler.renderPage(&buf, data); err != nil {
		c.String(http.StatusInternalServerError, "Erro ao renderizar a página")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

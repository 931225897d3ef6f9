package ui

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5/middleware"

	"logireport/internal"
)

// setupMiddleware serves the embedded static files
func (s *Server) setupMiddleware() error {
	staticFS, err := staticFiles()
	if err != nil {
		s.handler.logger.Error("[setupMiddleware] Error creating static filesystem: %v", err)
		return err
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// requestLogger logs one line per request, with upload errors attached
func requestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logRequest(logger, c.Request, c.Writer.Status(), start, c.Errors.String())
	}
}

// chiRequestLogger is requestLogger for the chi app
func chiRequestLogger(logger *internal.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logRequest(logger, r, status, start, "")
		})
	}
}

func logRequest(logger *internal.Logger, r *http.Request, status int, start time.Time, errs string) {
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("[HTTP] %s %s -> %d in %.2fms: %s", r.Method, r.URL.Path, status, elapsed, errs)
	case errs != "":
		logger.Warn("[HTTP] %s %s -> %d in %.2fms: %s", r.Method, r.URL.Path, status, elapsed, errs)
	default:
		logger.Info("[HTTP] %s %s -> %d in %.2fms", r.Method, r.URL.Path, status, elapsed)
	}
}

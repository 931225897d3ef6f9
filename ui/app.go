package ui

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is a lightweight chi front end serving the same report pages as
// Server, for deployments that do not want gin.
type App struct {
	router  *chi.Mux
	handler *reportHandler
	config  Config
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(config Config, deps Dependencies) (*App, error) {
	handler, err := newReportHandler(deps)
	if err != nil {
		return nil, err
	}

	app := &App{
		router:  chi.NewRouter(),
		handler: handler,
		config:  config,
	}

	if err := app.setupMiddleware(); err != nil {
		return nil, err
	}
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() error {
	a.router.Use(middleware.RequestID)
	a.router.Use(chiRequestLogger(a.handler.logger))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := staticFiles()
	if err != nil {
		return err
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	return nil
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/report", a.handleReport)
	a.router.Post("/api/report", a.handleReportJSON)
	a.router.Get("/healthz", a.handleHealth)
}

// Handler exposes the router
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves the app on the configured port
func (a *App) Start() error {
	a.handler.logger.Info("Starting report UI on http://localhost:%s", a.config.Port)
	return http.ListenAndServe(":"+a.config.Port, a.router)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.writePage(w, http.StatusOK, a.handler.page())
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := a.handler.processUpload(w, r)
	a.writePage(w, statusFor(err), a.handler.reportPage(rep, err))
}

func (a *App) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	rep, err := a.handler.processUpload(w, r)
	if err != nil {
		writeJSON(w, statusFor(err), errorPayload(rep, err))
		return
	}
	writeJSON(w, http.StatusOK, reportPayload(rep))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) writePage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := a.handler.renderPage(&buf, data); err != nil {
		http.Error(w, "Erro ao renderizar a página", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

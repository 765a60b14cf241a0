package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"coordlab/domain/report"
)

// App serves a completed report over HTTP: the rendered summary page, the
// raw report JSON and a health probe. The report is immutable once the app
// is constructed, so no handler takes locks.
type App struct {
	router *chi.Mux
	report *report.Report
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates the viewer for a report.
func NewApp(rep *report.Report) *App {
	app := &App{
		router: chi.NewRouter(),
		report: rep,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/api/report", a.handleReportJSON)
}

// Start runs the HTTP server on the configured port.
func (a *App) Start(config Config) error {
	return http.ListenAndServe(":"+config.Port, a.router)
}

// Router exposes the handler for tests.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	md := RenderMarkdown(a.report)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.ToHTML([]byte(md), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html><html><head><title>Coordination Report</title></head><body>"))
	w.Write(body)
	w.Write([]byte("</body></html>"))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (a *App) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.report); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

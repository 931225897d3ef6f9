package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"logireport/ui/services"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// parseTemplates parses every page template with the report helpers
func parseTemplates(render *services.RenderService) (*template.Template, error) {
	funcMap := template.FuncMap{
		"chart": render.Chart,
		"label": services.DisplayLabel,
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}

// staticFiles returns the embedded static directory rooted at its contents
func staticFiles() (fs.FS, error) {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to create static filesystem: %w", err)
	}
	return staticFS, nil
}

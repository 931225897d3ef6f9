package ui

import (
	stderrors "errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"logireport/domain/report"
	"logireport/internal"
	"logireport/internal/aggregator"
	"logireport/internal/errors"
	"logireport/ui/services"
)

// uploadField is the multipart field carrying the dataset file
const uploadField = "dataset"

// multipartOverhead is allowed on top of the file limit for form boundaries
const multipartOverhead = 1 << 20

// Dependencies wires the presentation layer
type Dependencies struct {
	Reports     *services.ReportService
	Render      *services.RenderService
	MaxUploadMB int
	Logger      *internal.Logger
}

// pageData feeds templates/index.html
type pageData struct {
	Title           string
	Intro           template.HTML
	Narrative       template.HTML
	MaxUploadMB     int
	Report          *report.Report
	Error           string
	ErrorCode       string
	ExpectedColumns []string
}

// reportHandler holds the logic shared by the gin server and the chi app
type reportHandler struct {
	reports     *services.ReportService
	render      *services.RenderService
	templates   *template.Template
	maxUploadMB int
	logger      *internal.Logger
}

func newReportHandler(deps Dependencies) (*reportHandler, error) {
	if deps.Reports == nil {
		return nil, fmt.Errorf("report service is required")
	}
	if deps.Render == nil {
		deps.Render = services.NewRenderService()
	}
	if deps.Logger == nil {
		deps.Logger = internal.DefaultLogger
	}
	if deps.MaxUploadMB <= 0 {
		deps.MaxUploadMB = 50
	}

	templates, err := parseTemplates(deps.Render)
	if err != nil {
		return nil, err
	}

	return &reportHandler{
		reports:     deps.Reports,
		render:      deps.Render,
		templates:   templates,
		maxUploadMB: deps.MaxUploadMB,
		logger:      deps.Logger,
	}, nil
}

func (h *reportHandler) maxBytes() int64 {
	return int64(h.maxUploadMB) * 1024 * 1024
}

// processUpload reads the multipart upload from r and builds its report
func (h *reportHandler) processUpload(w http.ResponseWriter, r *http.Request) (*report.Report, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes()+multipartOverhead)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, h.tooLarge()
		}
		h.logger.Warn("[handleUpload] No file uploaded: %v", err)
		return nil, errors.InvalidInput("Nenhum arquivo enviado")
	}
	defer file.Close()

	if header.Size > h.maxBytes() {
		return nil, h.tooLarge()
	}

	h.logger.Info("[handleUpload] Received %s (%d bytes)", header.Filename, header.Size)
	return h.reports.Build(r.Context(), header.Filename, file)
}

func (h *reportHandler) tooLarge() error {
	return errors.InvalidInput(fmt.Sprintf("O arquivo excede o limite de %d MB", h.maxUploadMB))
}

func (h *reportHandler) page() pageData {
	return pageData{
		Title:       "Otimização de Transporte e Logística: Análise de Vistoria e Coleta",
		Intro:       h.render.Intro(),
		Narrative:   h.render.Narrative(),
		MaxUploadMB: h.maxUploadMB,
	}
}

// reportPage builds the page for an upload outcome. A missing-columns error
// still carries the preview of what was read.
func (h *reportHandler) reportPage(rep *report.Report, err error) pageData {
	data := h.page()
	data.Report = rep
	if err != nil {
		data.Error = err.Error()
		data.ErrorCode = errors.GetCode(err)
		if data.ErrorCode == errors.CodeMissingColumns {
			data.ExpectedColumns = aggregator.RequiredColumns
		}
	}
	return data
}

func (h *reportHandler) renderPage(w io.Writer, data pageData) error {
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error("[renderPage] Template error: %v", err)
		return err
	}
	return nil
}

// statusFor maps an upload error to its HTTP status
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.IsRecoverable(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// reportPayload is the JSON body of a successful /api/report call
func reportPayload(rep *report.Report) map[string]interface{} {
	return map[string]interface{}{
		"report_id":    rep.ID,
		"filename":     rep.Filename,
		"generated_at": rep.GeneratedAt.UTC().Format(time.RFC3339),
		"records":      rep.Table.Len(),
		"columns":      rep.Table.Columns,
		"rows":         rep.Table.Rows(),
		"inspection":   rep.Inspection,
		"collection":   rep.Collection,
	}
}

// errorPayload is the JSON body of a failed /api/report call
func errorPayload(rep *report.Report, err error) map[string]interface{} {
	payload := map[string]interface{}{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	}
	if errors.HasCode(err, errors.CodeMissingColumns) {
		payload["expected_columns"] = aggregator.RequiredColumns
	}
	if errors.HasCode(err, errors.CodeUnsupportedFormat) {
		payload["supported_formats"] = errors.GetDetails(err)
	}
	if rep != nil && rep.Preview != nil {
		payload["columns"] = rep.Preview.Columns
	}
	return payload
}

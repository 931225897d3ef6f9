package services

import (
	"context"
	"io"
	"time"

	"logireport/domain/core"
	"logireport/domain/dataset"
	"logireport/domain/report"
	"logireport/internal"
	"logireport/internal/aggregator"
	"logireport/internal/errors"
	"logireport/ports"
)

// Page text for each report section
const (
	inspectionTitle      = "Distribuição do Status da Vistoria (Gráfico de Pizza)"
	inspectionChartTitle = "Distribuição do Status da Vistoria (Pizza)"
	inspectionHeader     = "Status da Vistoria"
	collectionTitle      = "Distribuição do Status da Coleta (Gráfico de Colunas)"
	collectionChartTitle = "Distribuição do Status da Coleta (Colunas)"
	collectionHeader     = "Status da Coleta"
)

// ReportService turns one uploaded file into a report. It holds no per-upload
// state, so a single instance serves every request.
type ReportService struct {
	loader      ports.DatasetLoader
	palettes    report.Palettes
	previewRows int
	logger      *internal.Logger
	now         func() time.Time
}

// NewReportService creates a report service
func NewReportService(loader ports.DatasetLoader, palettes report.Palettes, previewRows int, logger *internal.Logger) *ReportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{
		loader:      loader,
		palettes:    palettes,
		previewRows: previewRows,
		logger:      logger,
		now:         time.Now,
	}
}

// Build loads src and aggregates it. When the required columns are missing
// the returned report still carries the raw preview next to the
// MISSING_COLUMNS error, so the caller can show what was read.
func (s *ReportService) Build(ctx context.Context, filename string, src io.Reader) (*report.Report, error) {
	ds, err := s.loader.ReadData(ctx, filename, src)
	if err != nil {
		s.logger.Warn("[ReportService] Failed to load %s: %v", filename, err)
		return nil, err
	}
	return s.FromDataset(filename, ds)
}

// FromDataset builds the report for a dataset that is already loaded, as
// read by the command line tool.
func (s *ReportService) FromDataset(filename string, ds *dataset.Dataset) (*report.Report, error) {
	rep := &report.Report{
		ID:          core.NewReportID(),
		Filename:    filename,
		GeneratedAt: s.now(),
		Preview:     ds.Head(s.previewRows),
	}
	logger := s.logger.With("report_id", rep.ID.String(), "filename", filename)

	result, err := aggregator.Aggregate(ds)
	if err != nil {
		if errors.HasCode(err, errors.CodeMissingColumns) {
			logger.Warn("[ReportService] Required columns missing: %v", err)
			return rep, err
		}
		logger.Error("[ReportService] Aggregation failed: %v", err)
		return nil, err
	}

	rep.Table = result.Dataset
	rep.Inspection = s.section("inspection", inspectionTitle, inspectionChartTitle, inspectionHeader,
		report.ChartPie, result.Inspection, s.palettes.Inspection)
	rep.Collection = s.section("collection", collectionTitle, collectionChartTitle, collectionHeader,
		report.ChartBar, result.Collection, s.palettes.Collection)

	logger.Info("[ReportService] Report built: %d records, %d inspection labels, %d collection labels",
		result.Dataset.Len(), len(result.Inspection.Rows), len(result.Collection.Rows))
	return rep, nil
}

func (s *ReportService) section(key, title, chartTitle, header string, kind report.ChartKind, dist report.StatusDistribution, colors report.ColorMap) report.Section {
	return report.Section{
		Key:          key,
		Title:        title,
		ChartTitle:   chartTitle,
		LabelHeader:  header,
		Chart:        kind,
		Distribution: dist,
		Colors:       colors.Resolve(dist.Labels()),
	}
}

// DisplayLabel shows blank status cells as "(em branco)"
func DisplayLabel(label string) string {
	if label == "" {
		return "(em branco)"
	}
	return label
}

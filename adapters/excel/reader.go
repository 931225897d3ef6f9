package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"logireport/domain/dataset"
	"logireport/internal"
	"logireport/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DataReader reads CSV files and the first sheet of XLSX workbooks into a
// dataset. Raw header text is kept as-is; normalization happens downstream.
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, logger: logger}
}

// ReadData parses src according to the extension of filename. The extension
// is checked before any byte is read.
func (r *DataReader) ReadData(ctx context.Context, filename string, src io.Reader) (*dataset.Dataset, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("[DataReader] Starting to read %s file: %s", format, filename)
	startTime := time.Now()

	var rows [][]string
	switch format {
	case FormatCSV:
		rows, err = r.readCSVRows(src)
	case FormatXLSX:
		rows, err = r.readExcelRows(src)
	}
	if err != nil {
		return nil, err
	}

	ds, err := r.processRows(filepath.Base(filename), format, rows)
	if err != nil {
		return nil, err
	}

	r.logger.Info("[DataReader] %s file processed in %.2fms (%d columns, %d rows)",
		strings.ToUpper(string(format)), float64(time.Since(startTime).Nanoseconds())/1e6, len(ds.Columns), ds.Len())
	return ds, nil
}

// ReadFile reads a local file, used by the command line tool
func (r *DataReader) ReadFile(ctx context.Context, path string) (*dataset.Dataset, error) {
	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to open %s: %w", path, err))
	}
	defer file.Close()

	return r.ReadData(ctx, path, file)
}

// readCSVRows reads CSV data, stripping a UTF-8 BOM and guessing the delimiter
func (r *DataReader) readCSVRows(src io.Reader) ([][]string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.ParseFailed(string(FormatCSV), err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.ParseFailed(string(FormatCSV), fmt.Errorf("file is empty"))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = r.config.Delimiter
	if reader.Comma == 0 {
		reader.Comma = detectDelimiter(data)
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseFailed(string(FormatCSV), err)
	}
	return rows, nil
}

// detectDelimiter picks ';' when the header line has semicolons and no commas
func detectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.IndexByte(header, ';') >= 0 && bytes.IndexByte(header, ',') < 0 {
		return ';'
	}
	return ','
}

// readExcelRows reads the configured (default: first) sheet of a workbook
func (r *DataReader) readExcelRows(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.ParseFailed(string(FormatXLSX), err)
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.ParseFailed(string(FormatXLSX), fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.ParseFailed(string(FormatXLSX), fmt.Errorf("failed to read sheet %q: %w", sheet, err))
	}
	r.logger.Debug("[DataReader] Sheet %q read (%d rows)", sheet, len(rows))
	return rows, nil
}

// processRows turns raw string rows into a dataset. The first non-blank row
// is the header; blank rows are skipped. Short rows are padded, long rows
// are accepted only when the overflow cells are blank.
func (r *DataReader) processRows(name string, format Format, rows [][]string) (*dataset.Dataset, error) {
	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, errors.ParseFailed(string(format), fmt.Errorf("no header row found"))
	}

	headers := uniqueHeaders(rows[start])

	var records []dataset.Record
	for i := start + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		if len(row) > len(headers) && !isBlankRow(row[len(headers):]) {
			return nil, errors.ParseFailed(string(format),
				fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(headers)))
		}

		record := make(dataset.Record, len(headers))
		for j, header := range headers {
			value := ""
			if j < len(row) {
				value = row[j]
			}
			if r.config.TrimValues {
				value = strings.TrimSpace(value)
			}
			record[header] = value
		}
		records = append(records, record)
	}

	return dataset.New(name, headers, records), nil
}

// uniqueHeaders names blank headers "Unnamed: i" and suffixes repeated ones
// with ".1", ".2", ... so every column keeps its own key.
func uniqueHeaders(row []string) []string {
	headers := make([]string, len(row))
	taken := make(map[string]bool, len(row))
	repeats := make(map[string]int)
	for i, header := range row {
		if strings.TrimSpace(header) == "" {
			header = fmt.Sprintf("Unnamed: %d", i)
		}
		name := header
		for taken[name] {
			repeats[header]++
			name = fmt.Sprintf("%s.%d", header, repeats[header])
		}
		taken[name] = true
		headers[i] = name
	}
	return headers
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

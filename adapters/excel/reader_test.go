package excel

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"logireport/domain/dataset"
	"logireport/internal/errors"
)

func newTestReader() *DataReader {
	return NewDataReader(DefaultReaderConfig(), nil)
}

func readCSV(t *testing.T, content string) (*dataset.Dataset, error) {
	t.Helper()
	return newTestReader().ReadData(context.Background(), "dados.csv", strings.NewReader(content))
}

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"base.csv", FormatCSV, false},
		{"BASE.CSV", FormatCSV, false},
		{"relatorio.final.xlsx", FormatXLSX, false},
		{"planilha.xls", "", true},
		{"notas.pdf", "", true},
		{"sem_extensao", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCSV(t *testing.T) {
	ds, err := readCSV(t, "Placa,Status Vistoria,Status da Coleta\nAAA1A11, Ok ,Concluído\nBBB2B22,Pendente,Pendente\n")
	require.NoError(t, err)

	assert.Equal(t, "dados.csv", ds.Name)
	assert.Equal(t, []string{"Placa", "Status Vistoria", "Status da Coleta"}, ds.Columns)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "Ok", ds.Records[0]["Status Vistoria"], "values are trimmed")
	assert.Equal(t, "Concluído", ds.Records[0]["Status da Coleta"])
}

func TestReadCSVKeepsRawHeaders(t *testing.T) {
	ds, err := readCSV(t, " Status_Vistoria ,STATUS DA COLETA\nOk,Pendente\n")
	require.NoError(t, err)

	assert.Equal(t, []string{" Status_Vistoria ", "STATUS DA COLETA"}, ds.Columns)
}

func TestReadCSVStripsBOMAndDetectsSemicolon(t *testing.T) {
	ds, err := readCSV(t, "\ufeffstatus_vistoria;status_da_coleta\nOk;Concluído\nCancelada;Cancelada\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"status_vistoria", "status_da_coleta"}, ds.Columns)
	assert.Equal(t, "Cancelada", ds.Records[1]["status_da_coleta"])
}

func TestReadCSVExplicitDelimiter(t *testing.T) {
	reader := NewDataReader(ReaderConfig{Delimiter: '\t'}, nil)

	ds, err := reader.ReadData(context.Background(), "tab.csv", strings.NewReader("a\tb\n1\t2\n"))
	require.NoError(t, err)

	assert.Equal(t, dataset.Record{"a": "1", "b": "2"}, ds.Records[0])
}

func TestReadCSVRaggedRows(t *testing.T) {
	ds, err := readCSV(t, "a,b,c\n1,2\n\n4,5,6,,\n")
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len(), "blank lines are skipped")
	assert.Equal(t, dataset.Record{"a": "1", "b": "2", "c": ""}, ds.Records[0])
	assert.Equal(t, dataset.Record{"a": "4", "b": "5", "c": "6"}, ds.Records[1])

	_, err = readCSV(t, "a,b\n1,2,3\n")
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
}

func TestReadCSVHeaderOnly(t *testing.T) {
	ds, err := readCSV(t, "status_vistoria,status_da_coleta\n")
	require.NoError(t, err)

	assert.Equal(t, 0, ds.Len())
	assert.Len(t, ds.Columns, 2)
}

func TestReadCSVEmptyFile(t *testing.T) {
	for _, content := range []string{"", "\ufeff", "  \n\n"} {
		_, err := readCSV(t, content)
		require.Error(t, err)
		assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
	}
}

func TestReadCSVDuplicateAndBlankHeaders(t *testing.T) {
	ds, err := readCSV(t, "status,status,,status\n1,2,3,4\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"status", "status.1", "Unnamed: 2", "status.2"}, ds.Columns)
	assert.Equal(t, "4", ds.Records[0]["status.2"])
}

func TestReadUnsupportedFormatReadsNothing(t *testing.T) {
	src := &countingReader{r: strings.NewReader("a,b\n")}

	_, err := newTestReader().ReadData(context.Background(), "dados.txt", src)

	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
	assert.Zero(t, src.n, "format must be rejected before parsing")
}

func TestReadDataHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestReader().ReadData(ctx, "dados.csv", strings.NewReader("a\n1\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadXLSXFirstSheet(t *testing.T) {
	data := buildWorkbook(t, "Coletas", [][]interface{}{
		{"Placa", "Status Vistoria", "Status da Coleta"},
		{"AAA1A11", "Ok", "Concluído"},
		{"BBB2B22", "Pendente", nil},
		{"CCC3C33", 42, "Cancelada"},
	})

	ds, err := newTestReader().ReadData(context.Background(), "Base.XLSX", bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "Base.XLSX", ds.Name)
	assert.Equal(t, []string{"Placa", "Status Vistoria", "Status da Coleta"}, ds.Columns)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, "", ds.Records[1]["Status da Coleta"])
	assert.Equal(t, "42", ds.Records[2]["Status Vistoria"])
}

func TestReadXLSXCorrupt(t *testing.T) {
	_, err := newTestReader().ReadData(context.Background(), "quebrado.xlsx", strings.NewReader("not a zip archive"))

	require.Error(t, err)
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
}

func TestReadXLSXEmptySheet(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", nil)

	_, err := newTestReader().ReadData(context.Background(), "vazio.xlsx", bytes.NewReader(data))

	require.Error(t, err)
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.csv")
	require.NoError(t, os.WriteFile(path, []byte("status_vistoria,status_da_coleta\nOk,Pendente\n"), 0o600))

	ds, err := newTestReader().ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "base.csv", ds.Name)
	assert.Equal(t, 1, ds.Len())

	_, err = newTestReader().ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

type countingReader struct {
	r *strings.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

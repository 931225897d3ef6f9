package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"logireport/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const sample = "Status Vistoria;Status da Coleta\nOk;Pendente\nOk;Concluído\nPendente;Pendente\n"

func TestSummarizeTables(t *testing.T) {
	out, err := runCLI(t, "summarize", writeFile(t, "base.csv", sample))

	require.NoError(t, err)
	assert.Contains(t, out, "base.csv (3 registros)")
	assert.Contains(t, out, "Status da Vistoria:")
	assert.Regexp(t, `Ok\s+2\s+66\.67%`, out)
	assert.Regexp(t, `Concluído\s+1\s+33\.33%`, out)
}

func TestSummarizeJSON(t *testing.T) {
	out, err := runCLI(t, "summarize", "--json", writeFile(t, "base.csv", sample))

	require.NoError(t, err)
	assert.Equal(t, "Pendente", gjson.Get(out, "collection.distribution.rows.0.label").String())
	assert.Equal(t, int64(3), gjson.Get(out, "inspection.distribution.total").Int())
	assert.False(t, gjson.Get(out, "Preview").Exists())
}

func TestSummarizeErrors(t *testing.T) {
	_, err := runCLI(t, "summarize", writeFile(t, "base.csv", "placa\nAAA1A11\n"))
	assert.ErrorContains(t, err, "status_da_coleta")

	_, err = runCLI(t, "summarize", writeFile(t, "base.json", "{}"))
	assert.Error(t, err)

	_, err = runCLI(t, "summarize", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = runCLI(t, "summarize")
	assert.Error(t, err)
}

func TestSummarizeChecksFormatBeforeOpening(t *testing.T) {
	_, err := runCLI(t, "summarize", filepath.Join(t.TempDir(), "relatorio.pdf"))

	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
}

func TestSummarizeMissingFileIsInvalidInput(t *testing.T) {
	_, err := runCLI(t, "summarize", filepath.Join(t.TempDir(), "missing.csv"))

	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

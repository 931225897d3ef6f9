package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCodeAndDetails(t *testing.T) {
	base := MissingColumns([]string{"status_vistoria", "status_da_coleta"}, []string{"status_da_coleta"})
	wrapped := Wrap(base, "report failed")

	assert.Equal(t, CodeMissingColumns, GetCode(wrapped))
	assert.Equal(t, []string{"status_vistoria", "status_da_coleta"}, GetDetails(wrapped))
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	err := Wrapf(fmt.Errorf("disk gone"), "reading %s", "frota.csv")

	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, "reading frota.csv: disk gone", err.Error())
	assert.False(t, IsRecoverable(err))
}

func TestGetCodeSeesThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("upload: %w", UnsupportedFormat("dados.pdf", []string{"csv", "xlsx"}))

	assert.True(t, IsAppError(err))
	assert.True(t, HasCode(err, CodeUnsupportedFormat))
	assert.True(t, IsRecoverable(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestMissingColumnsMessageNamesBothColumns(t *testing.T) {
	err := MissingColumns([]string{"status_vistoria", "status_da_coleta"}, []string{"status_vistoria"})

	assert.Contains(t, err.Error(), "'status_vistoria'")
	assert.Contains(t, err.Error(), "'status_da_coleta'")
}

func TestParseFailedExposesCause(t *testing.T) {
	cause := fmt.Errorf("record on line 3: wrong number of fields")
	err := ParseFailed("csv", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeParseError, GetCode(err))
	assert.Contains(t, err.Error(), "wrong number of fields")
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, fmt.Errorf("no file"))

	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Nil(t, WithCode(CodeInvalidInput, nil))
}

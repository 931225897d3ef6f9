package aggregator

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"logireport/domain/dataset"
)

func TestNormalizeColumnName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Status_Vistoria", "status_vistoria"},
		{"  Status da Coleta ", "status_da_coleta"},
		{"STATUS  VISTORIA", "status__vistoria"},
		{"\tPlaca\n", "placa"},
		{"já_normalizado", "já_normalizado"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeColumnName(tt.raw))
		})
	}
}

func TestNormalizeColumnNameIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("aBcDeÉçÇ _-\t 1")

	for i := 0; i < 500; i++ {
		var b strings.Builder
		for n := rng.Intn(16); n > 0; n-- {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		raw := b.String()

		once := NormalizeColumnName(raw)
		assert.Equal(t, once, NormalizeColumnName(once), "raw=%q", raw)
		assert.Equal(t, strings.ToLower(once), once)
		assert.Equal(t, strings.TrimSpace(once), once)
		assert.NotContains(t, once, " ")
	}
}

func TestNormalizeColumnsRenamesRecords(t *testing.T) {
	raw := dataset.New("frota.csv", []string{" Status Vistoria", "Status da Coleta "}, []dataset.Record{
		{" Status Vistoria": "Ok", "Status da Coleta ": "Pendente"},
	})

	got := NormalizeColumns(raw)

	want := &dataset.Dataset{
		Name:    "frota.csv",
		Columns: []string{"status_vistoria", "status_da_coleta"},
		Records: []dataset.Record{{"status_vistoria": "Ok", "status_da_coleta": "Pendente"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizeColumns mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, " Status Vistoria", raw.Columns[0], "input must not be modified")
}

func TestNormalizeColumnsKeepsCollidingHeaders(t *testing.T) {
	raw := dataset.New("x", []string{"Status", "status ", "STATUS"}, []dataset.Record{
		{"Status": "a", "status ": "b", "STATUS": "c"},
	})

	got := NormalizeColumns(raw)

	assert.Equal(t, []string{"status", "status_2", "status_3"}, got.Columns)
	assert.Equal(t, dataset.Record{"status": "a", "status_2": "b", "status_3": "c"}, got.Records[0])

	again := NormalizeColumns(got)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("NormalizeColumns not idempotent (-once +twice):\n%s", diff)
	}
}

func TestNormalizeColumnsNil(t *testing.T) {
	got := NormalizeColumns(nil)
	assert.Equal(t, 0, got.Len())
	assert.Empty(t, got.Columns)
}

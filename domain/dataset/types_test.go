package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPadsMissingValues(t *testing.T) {
	ds := New("frota.csv", []string{"placa", "status"}, []Record{
		{"placa": "ABC1D23", "status": "Ok"},
		{"placa": "XYZ9K88"},
	})

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "", ds.Records[1]["status"])
	_, present := ds.Records[1]["status"]
	assert.True(t, present, "missing cells should be padded with blanks")
}

func TestHasColumn(t *testing.T) {
	ds := New("x", []string{"a", "b"}, nil)

	assert.True(t, ds.HasColumn("a"))
	assert.False(t, ds.HasColumn("c"))

	var nilDataset *Dataset
	assert.False(t, nilDataset.HasColumn("a"))
	assert.Equal(t, 0, nilDataset.Len())
}

func TestHeadAndRows(t *testing.T) {
	ds := New("x", []string{"b", "a"}, []Record{
		{"a": "1", "b": "2"},
		{"a": "3", "b": "4"},
		{"a": "5", "b": "6"},
	})

	head := ds.Head(2)
	assert.Equal(t, 2, head.Len())
	assert.Equal(t, [][]string{{"2", "1"}, {"4", "3"}}, head.Rows())

	assert.Equal(t, 3, ds.Head(10).Len())
	assert.Equal(t, 3, ds.Head(-1).Len())
	assert.Equal(t, []string{"1", "3", "5"}, ds.Values("a"))
}

func TestNilDatasetAccessors(t *testing.T) {
	var ds *Dataset

	head := ds.Head(5)
	require.NotNil(t, head)
	assert.Equal(t, 0, head.Len())
	assert.Empty(t, head.Columns)
	assert.Nil(t, ds.Values("a"))
	assert.Nil(t, ds.Rows())
}

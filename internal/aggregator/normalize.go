package aggregator

import (
	"fmt"
	"strings"

	"logireport/domain/dataset"
)

// NormalizeColumnName trims surrounding whitespace, turns every space into an
// underscore and lowercases the result. NormalizeColumnName(NormalizeColumnName(s))
// == NormalizeColumnName(s).
func NormalizeColumnName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

// NormalizeColumns returns a copy of ds whose column names and record keys
// are normalized. When two headers collapse onto the same name the later ones
// get a numeric suffix (_2, _3, ...) so no column disappears. The input is
// not modified.
func NormalizeColumns(ds *dataset.Dataset) *dataset.Dataset {
	if ds == nil {
		return dataset.New("", nil, nil)
	}

	renamed := make([]string, len(ds.Columns))
	taken := make(map[string]bool, len(ds.Columns))
	for i, col := range ds.Columns {
		name := NormalizeColumnName(col)
		if taken[name] {
			name = uniqueName(name, taken)
		}
		taken[name] = true
		renamed[i] = name
	}

	records := make([]dataset.Record, len(ds.Records))
	for i, rec := range ds.Records {
		row := make(dataset.Record, len(renamed))
		for j, col := range ds.Columns {
			row[renamed[j]] = rec[col]
		}
		records[i] = row
	}

	return &dataset.Dataset{Name: ds.Name, Columns: renamed, Records: records}
}

func uniqueName(name string, taken map[string]bool) string {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

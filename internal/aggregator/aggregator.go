package aggregator

import (
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"logireport/domain/dataset"
	"logireport/domain/report"
	"logireport/internal/errors"
)

// Required column names, already normalized
const (
	InspectionColumn = "status_vistoria"
	CollectionColumn = "status_da_coleta"
)

// RequiredColumns lists the columns every uploaded table must carry
var RequiredColumns = []string{InspectionColumn, CollectionColumn}

// ValidateRequiredColumns reports whether every name in required is a column
// of the normalized dataset.
func ValidateRequiredColumns(ds *dataset.Dataset, required []string) bool {
	return len(MissingColumns(ds, required)) == 0
}

// MissingColumns returns the required names absent from ds, in required order
func MissingColumns(ds *dataset.Dataset, required []string) []string {
	var missing []string
	for _, name := range required {
		if !ds.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// ComputeDistribution counts the values of column. The column must exist;
// callers check with ValidateRequiredColumns first. Rows come out by
// descending count, equal counts keep the order in which the value first
// appeared. A dataset without records gives an empty distribution.
func ComputeDistribution(ds *dataset.Dataset, column string) report.StatusDistribution {
	dist := report.StatusDistribution{Column: column, Total: ds.Len()}
	if dist.Total == 0 {
		return dist
	}

	counts := make(map[string]int)
	var order []string
	for _, value := range ds.Values(column) {
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	// order is first-seen; a stable sort keeps it for ties
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	total := float64(dist.Total)
	dist.Rows = make([]report.DistributionRow, 0, len(order))
	for _, label := range order {
		count := counts[label]
		pct := float64(count) / total * 100
		rounded := RoundPercentage(pct)
		dist.Rows = append(dist.Rows, report.DistributionRow{
			Label:      label,
			Count:      count,
			Percentage: pct,
			Rounded:    rounded,
			Display:    FormatPercentage(rounded),
		})
	}
	return dist
}

// RoundPercentage rounds to two decimals with ties to even, so 3.125 gives
// 3.12 and 0.625 gives 0.62.
func RoundPercentage(pct float64) float64 {
	return scalar.RoundEven(pct, 2)
}

// FormatPercentage renders an already rounded percentage with a trailing
// "%". Whole numbers keep one decimal ("50.0%"), others use the shortest
// form ("66.67%").
func FormatPercentage(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "%"
}

// Result is the outcome of aggregating one upload
type Result struct {
	Dataset    *dataset.Dataset
	Inspection report.StatusDistribution
	Collection report.StatusDistribution
}

// Aggregate normalizes ds, checks the required columns and computes both
// status distributions. Missing columns yield a MISSING_COLUMNS error and no
// distribution at all.
func Aggregate(ds *dataset.Dataset) (*Result, error) {
	normalized := NormalizeColumns(ds)

	if missing := MissingColumns(normalized, RequiredColumns); len(missing) > 0 {
		return nil, errors.MissingColumns(RequiredColumns, missing)
	}

	result := &Result{
		Dataset:    normalized,
		Inspection: ComputeDistribution(normalized, InspectionColumn),
		Collection: ComputeDistribution(normalized, CollectionColumn),
	}

	for _, dist := range []report.StatusDistribution{result.Inspection, result.Collection} {
		if err := dist.Validate(); err != nil {
			return nil, errors.Wrapf(err, "distribution for %s is inconsistent", dist.Column)
		}
	}
	return result, nil
}

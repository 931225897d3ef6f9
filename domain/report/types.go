package report

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"logireport/domain/core"
	"logireport/domain/dataset"
)

const (
	// percentTolerance bounds the drift of unrounded percentages from 100
	percentTolerance = 1e-9
)

// DistributionRow is one label of a categorical breakdown
type DistributionRow struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Rounded    float64 `json:"rounded"`
	Display    string  `json:"display"`
}

// StatusDistribution is the count-and-percentage breakdown of one column.
// Rows are ordered by descending count, ties in first-seen order.
type StatusDistribution struct {
	Column string            `json:"column"`
	Total  int               `json:"total"`
	Rows   []DistributionRow `json:"rows"`
}

// IsEmpty reports whether the distribution has no rows
func (d StatusDistribution) IsEmpty() bool {
	return len(d.Rows) == 0
}

// Labels returns the row labels in display order
func (d StatusDistribution) Labels() []string {
	labels := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		labels[i] = row.Label
	}
	return labels
}

// Counts returns the row counts in display order
func (d StatusDistribution) Counts() []int {
	counts := make([]int, len(d.Rows))
	for i, row := range d.Rows {
		counts[i] = row.Count
	}
	return counts
}

// MaxCount returns the largest row count, 0 for an empty distribution
func (d StatusDistribution) MaxCount() int {
	maxCount := 0
	for _, row := range d.Rows {
		if row.Count > maxCount {
			maxCount = row.Count
		}
	}
	return maxCount
}

// Validate checks the distribution invariants: counts add up to Total and,
// for a non-empty table, percentages add up to 100.
func (d StatusDistribution) Validate() error {
	sum := 0
	percentages := make([]float64, 0, len(d.Rows))
	for _, row := range d.Rows {
		if row.Count < 0 {
			return fmt.Errorf("label %q has negative count %d", row.Label, row.Count)
		}
		if row.Percentage < 0 || row.Percentage > 100 {
			return fmt.Errorf("label %q has percentage %.4f outside [0,100]", row.Label, row.Percentage)
		}
		sum += row.Count
		percentages = append(percentages, row.Percentage)
	}

	if sum != d.Total {
		return fmt.Errorf("counts sum to %d, expected %d", sum, d.Total)
	}
	if d.Total == 0 {
		return nil
	}

	if total := floats.SumCompensated(percentages); !scalar.EqualWithinAbs(total, 100, percentTolerance) {
		return fmt.Errorf("percentages sum to %.12f, expected 100", total)
	}
	return nil
}

// RoundedDrift returns how far the rounded percentages are from summing to
// 100. Each row contributes at most 0.005, so the drift grows with the
// number of labels.
func (d StatusDistribution) RoundedDrift() float64 {
	if d.Total == 0 {
		return 0
	}
	rounded := make(stats.Float64Data, len(d.Rows))
	for i, row := range d.Rows {
		rounded[i] = row.Rounded
	}
	total, err := rounded.Sum()
	if err != nil {
		return 0
	}
	return math.Abs(total - 100)
}

// ChartKind selects how a section is drawn
type ChartKind string

const (
	ChartPie ChartKind = "pie"
	ChartBar ChartKind = "bar"
)

// Section is one status breakdown ready for the presentation layer
type Section struct {
	Key          string             `json:"key"`
	Title        string             `json:"title"`
	ChartTitle   string             `json:"chart_title"`
	LabelHeader  string             `json:"label_header"`
	Chart        ChartKind          `json:"chart"`
	Distribution StatusDistribution `json:"distribution"`
	Colors       []string           `json:"colors"`
}

// Report is everything one upload renders. It is built per request and
// discarded once the response is written.
type Report struct {
	ID          core.ReportID    `json:"report_id"`
	Filename    string           `json:"filename"`
	GeneratedAt time.Time        `json:"generated_at"`
	Preview     *dataset.Dataset `json:"-"`
	Table       *dataset.Dataset `json:"-"`
	Inspection  Section          `json:"inspection"`
	Collection  Section          `json:"collection"`
}

// Sections returns the report sections in page order
func (r *Report) Sections() []Section {
	return []Section{r.Inspection, r.Collection}
}

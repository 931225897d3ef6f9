package services

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"logireport/domain/report"
)

// Chart canvas sizes in SVG user units
const (
	pieWidth     = 520
	pieHeight    = 320
	pieRadius    = 130
	barWidth     = 520
	barHeight    = 340
	barMarginL   = 56
	barMarginR   = 16
	barMarginT   = 24
	barMarginB   = 64
	barGap       = 0.2
	minLabelPct  = 4.0
	maxAxisTicks = 5
)

// RenderService draws report sections as inline SVG and holds the static
// page text.
type RenderService struct {
	intro     template.HTML
	narrative template.HTML
}

// NewRenderService renders the static page text once
func NewRenderService() *RenderService {
	return &RenderService{
		intro:     RenderMarkdown(IntroMarkdown),
		narrative: RenderMarkdown(NarrativeMarkdown),
	}
}

// Intro returns the text shown above the upload form
func (s *RenderService) Intro() template.HTML {
	return s.intro
}

// Narrative returns the analysis text shown under the charts
func (s *RenderService) Narrative() template.HTML {
	return s.narrative
}

// Chart draws the section with the chart kind it asks for
func (s *RenderService) Chart(section report.Section) template.HTML {
	if section.Distribution.IsEmpty() {
		return emptyChart(section.ChartTitle)
	}
	switch section.Chart {
	case report.ChartBar:
		return BarChart(section)
	default:
		return PieChart(section)
	}
}

// PieChart draws slices clockwise from twelve o'clock in row order
func PieChart(section report.Section) template.HTML {
	dist := section.Distribution
	cx, cy := float64(pieRadius+20), float64(pieHeight/2+10)

	var b strings.Builder
	openSVG(&b, pieWidth, pieHeight, section.ChartTitle)

	total := float64(dist.Total)
	angle := -math.Pi / 2
	for i, row := range dist.Rows {
		color := colorAt(section.Colors, i)
		share := float64(row.Count) / total
		sweep := share * 2 * math.Pi
		if share >= 1 {
			fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%d" fill="%s" stroke="#FFFFFF"><title>%s</title></circle>`,
				cx, cy, pieRadius, color, sliceTitle(row))
		} else if sweep > 0 {
			x0, y0 := polar(cx, cy, pieRadius, angle)
			x1, y1 := polar(cx, cy, pieRadius, angle+sweep)
			largeArc := 0
			if sweep > math.Pi {
				largeArc = 1
			}
			fmt.Fprintf(&b, `<path d="M %.2f %.2f L %.2f %.2f A %d %d 0 %d 1 %.2f %.2f Z" fill="%s" stroke="#FFFFFF"><title>%s</title></path>`,
				cx, cy, x0, y0, pieRadius, pieRadius, largeArc, x1, y1, color, sliceTitle(row))
		}
		if row.Percentage >= minLabelPct {
			lx, ly := polar(cx, cy, pieRadius*0.65, angle+sweep/2)
			fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" class="slice-label">%s</text>`,
				lx, ly, template.HTMLEscapeString(row.Display))
		}
		angle += sweep
	}

	legendX := cx + pieRadius + 40
	for i, row := range dist.Rows {
		y := 50 + i*22
		fmt.Fprintf(&b, `<rect x="%.2f" y="%d" width="14" height="14" fill="%s"/>`, legendX, y, colorAt(section.Colors, i))
		fmt.Fprintf(&b, `<text x="%.2f" y="%d" class="legend">%s</text>`,
			legendX+22, y+12, template.HTMLEscapeString(DisplayLabel(row.Label)))
	}

	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

// BarChart draws one column per label with a count axis starting at zero
func BarChart(section report.Section) template.HTML {
	dist := section.Distribution
	plotW := float64(barWidth - barMarginL - barMarginR)
	plotH := float64(barHeight - barMarginT - barMarginB)
	baseY := float64(barMarginT) + plotH

	step := tickStep(dist.MaxCount())
	axisMax := step * int(math.Ceil(float64(dist.MaxCount())/float64(step)))

	var b strings.Builder
	openSVG(&b, barWidth, barHeight, section.ChartTitle)

	for tick := 0; tick <= axisMax; tick += step {
		y := baseY - float64(tick)/float64(axisMax)*plotH
		fmt.Fprintf(&b, `<line x1="%d" y1="%.2f" x2="%d" y2="%.2f" class="grid"/>`, barMarginL, y, barWidth-barMarginR, y)
		fmt.Fprintf(&b, `<text x="%d" y="%.2f" text-anchor="end" class="axis">%d</text>`, barMarginL-6, y+4, tick)
	}

	slot := plotW / float64(len(dist.Rows))
	width := slot * (1 - barGap)
	for i, row := range dist.Rows {
		height := float64(row.Count) / float64(axisMax) * plotH
		x := float64(barMarginL) + float64(i)*slot + (slot-width)/2
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#444444" stroke-width="1"><title>%s</title></rect>`,
			x, baseY-height, width, height, colorAt(section.Colors, i), sliceTitle(row))
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" class="bar-value">%d</text>`,
			x+width/2, baseY-height-6, row.Count)
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" class="axis">%s</text>`,
			x+width/2, baseY+18, template.HTMLEscapeString(DisplayLabel(row.Label)))
	}

	fmt.Fprintf(&b, `<text x="14" y="%.2f" transform="rotate(-90 14 %.2f)" text-anchor="middle" class="axis-title">Quantidade</text>`,
		float64(barMarginT)+plotH/2, float64(barMarginT)+plotH/2)
	fmt.Fprintf(&b, `<text x="%.2f" y="%d" text-anchor="middle" class="axis-title">%s</text>`,
		float64(barMarginL)+plotW/2, barHeight-12, template.HTMLEscapeString(section.LabelHeader))

	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

func emptyChart(title string) template.HTML {
	var b strings.Builder
	openSVG(&b, pieWidth, 80, title)
	b.WriteString(`<text x="20" y="45" class="empty">Nenhum registro para exibir</text></svg>`)
	return template.HTML(b.String())
}

func openSVG(b *strings.Builder, width, height int, title string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" role="img" aria-label="%s">`,
		width, height, width, height, template.HTMLEscapeString(title))
}

// tickStep returns an integer axis step giving at most maxAxisTicks intervals
func tickStep(maxCount int) int {
	if maxCount <= maxAxisTicks {
		return 1
	}
	raw := float64(maxCount) / maxAxisTicks
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * magnitude; step >= raw {
			return int(step)
		}
	}
	return int(10 * magnitude)
}

func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

func colorAt(colors []string, i int) string {
	if i < len(colors) && colors[i] != "" {
		return colors[i]
	}
	return report.DefaultSequence[i%len(report.DefaultSequence)]
}

func sliceTitle(row report.DistributionRow) string {
	return template.HTMLEscapeString(fmt.Sprintf("%s: %d (%s)", DisplayLabel(row.Label), row.Count, row.Display))
}

package report

import (
	"golang.org/x/text/unicode/norm"
)

// Display colours used by the default palettes
const (
	LightGray  = "#D3D3D3"
	MediumGray = "#A9A9A9"
)

// DefaultSequence colours labels missing from a ColorMap, cycled in row order
var DefaultSequence = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// ColorMap maps a status label to a display colour
type ColorMap map[string]string

// Lookup finds the colour for label. Labels compare in Unicode NFC so that
// "Concluído" matches whether the accent is precomposed or not.
func (m ColorMap) Lookup(label string) (string, bool) {
	if color, ok := m[label]; ok {
		return color, true
	}
	key := norm.NFC.String(label)
	for candidate, color := range m {
		if norm.NFC.String(candidate) == key {
			return color, true
		}
	}
	return "", false
}

// Resolve returns one colour per label. Unmapped labels take the next colour
// of DefaultSequence.
func (m ColorMap) Resolve(labels []string) []string {
	colors := make([]string, len(labels))
	next := 0
	for i, label := range labels {
		if color, ok := m.Lookup(label); ok {
			colors[i] = color
			continue
		}
		colors[i] = DefaultSequence[next%len(DefaultSequence)]
		next++
	}
	return colors
}

// Palettes holds the colour map of each report section
type Palettes struct {
	Inspection ColorMap `yaml:"inspection" json:"inspection"`
	Collection ColorMap `yaml:"collection" json:"collection"`
}

// DefaultPalettes returns the built-in grayscale palettes
func DefaultPalettes() Palettes {
	return Palettes{
		Inspection: ColorMap{
			"Ok":        LightGray,
			"Pendente":  MediumGray,
			"Cancelada": MediumGray,
		},
		Collection: ColorMap{
			"Concluído": LightGray,
			"Pendente":  MediumGray,
			"Cancelada": MediumGray,
		},
	}
}

// Merge overlays other on top of p. Empty maps in other leave p untouched.
func (p Palettes) Merge(other Palettes) Palettes {
	return Palettes{
		Inspection: mergeColorMaps(p.Inspection, other.Inspection),
		Collection: mergeColorMaps(p.Collection, other.Collection),
	}
}

func mergeColorMaps(base, overlay ColorMap) ColorMap {
	merged := make(ColorMap, len(base)+len(overlay))
	for label, color := range base {
		merged[label] = color
	}
	for label, color := range overlay {
		merged[label] = color
	}
	return merged
}

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"logireport/domain/report"
	"logireport/internal/errors"
)

var hexColor = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadPalettes returns the default palettes overlaid with the YAML file at
// path. An empty path yields the defaults. The file looks like:
//
//	inspection:
//	  Ok: "#D3D3D3"
//	collection:
//	  Concluído: "#D3D3D3"
func LoadPalettes(path string) (report.Palettes, error) {
	defaults := report.DefaultPalettes()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return report.Palettes{}, errors.Wrapf(err, "failed to read palette file %s", path)
	}

	overrides, err := ParsePalettes(data)
	if err != nil {
		return report.Palettes{}, err
	}
	return defaults.Merge(overrides), nil
}

// ParsePalettes decodes and validates a palette document
func ParsePalettes(data []byte) (report.Palettes, error) {
	var palettes report.Palettes
	if err := yaml.Unmarshal(data, &palettes); err != nil {
		return report.Palettes{}, errors.WithCode(errors.CodeConfigInvalid, fmt.Errorf("invalid palette YAML: %w", err))
	}

	for section, colors := range map[string]report.ColorMap{
		"inspection": palettes.Inspection,
		"collection": palettes.Collection,
	} {
		for label, color := range colors {
			if !hexColor.MatchString(color) {
				return report.Palettes{}, errors.ConfigInvalid(fmt.Sprintf("%s palette: label %q has invalid colour %q", section, label, color))
			}
		}
	}
	return palettes, nil
}

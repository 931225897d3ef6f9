package excel

import (
	"path/filepath"
	"strings"

	"logireport/internal/errors"
)

// Format is a supported upload file kind
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SupportedFormats lists the accepted extensions without the dot
var SupportedFormats = []Format{FormatCSV, FormatXLSX}

// SupportedExtensions returns the accepted extensions as strings
func SupportedExtensions() []string {
	exts := make([]string, len(SupportedFormats))
	for i, f := range SupportedFormats {
		exts[i] = string(f)
	}
	return exts
}

// DetectFormat maps a filename to its Format by extension, case-insensitively.
// Anything else is an UNSUPPORTED_FORMAT error.
func DetectFormat(filename string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, f := range SupportedFormats {
		if ext == string(f) {
			return f, nil
		}
	}
	return "", errors.UnsupportedFormat(filename, SupportedExtensions())
}

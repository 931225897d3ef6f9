package excel

// ReaderConfig holds configuration for the tabular file reader
type ReaderConfig struct {
	// Delimiter for CSV. 0 auto-detects between ',' and ';'.
	Delimiter rune `json:"delimiter"`
	// SheetName selects the workbook sheet; empty means the first sheet.
	SheetName string `json:"sheet_name"`
	// TrimValues strips surrounding whitespace from every data cell.
	TrimValues bool `json:"trim_values"`
}

// DefaultReaderConfig returns sensible defaults for upload processing
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		TrimValues: true,
	}
}

package excel

// ExcelConfig holds configuration for the draw history source
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	Sheet    string `json:"sheet"`
	Enabled  bool   `json:"enabled"`
}

// DefaultExcelConfig returns sensible defaults for Excel processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		Sheet:   DefaultSheet,
		Enabled: false,
	}
}

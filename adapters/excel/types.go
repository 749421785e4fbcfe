package excel

// DefaultSheet is read when no sheet name is configured
const DefaultSheet = "Sheet1"

// RawRowData represents a row of raw Excel data as string key-value pairs
type RawRowData map[string]string

// ExcelData represents the complete Excel dataset
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// DrawColumns names the header of each draw attribute in a sheet.
// Contest and Date are optional; Numbers always holds fifteen headers.
type DrawColumns struct {
	Contest string
	Date    string
	Numbers []string
}

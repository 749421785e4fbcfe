package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"lotogen/domain/core"
	"lotogen/domain/lottery"
	"lotogen/internal"

	"github.com/xuri/excelize/v2"
)

var (
	contestHeaders = []string{"concurso", "contest", "contestnumber"}
	dateHeaders    = []string{"data", "datasorteio", "date", "drawdate"}
	// Numbered column families, tried in order: D1..D15, Bola1..Bola15, ...
	numberPrefixes = []string{"d", "bola", "dezena", "ball", "n"}
	dateLayouts    = []string{"02/01/2006", "2006-01-02", "01-02-06", "2006-01-02 15:04:05", time.RFC3339}
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		sheet:    DefaultSheet,
		logger:   internal.DefaultLogger.With("DrawReader"),
	}
}

// NewDrawReader creates a reader from configuration
func NewDrawReader(cfg ExcelConfig) *DataReader {
	return NewDataReader(cfg.FilePath).WithSheet(cfg.Sheet)
}

// WithSheet selects the worksheet read from xlsx files
func (r *DataReader) WithSheet(sheet string) *DataReader {
	if sheet != "" {
		r.sheet = sheet
	}
	return r
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelData reads the configured sheet into structured format
func (r *DataReader) readExcelData() (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheet, err)
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", r.sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into ExcelData format
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRowData
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRowData)

		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}

		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

// DetectDrawColumns locates the contest, date and fifteen number columns.
// Numbered families (D1..D15, Bola1..Bola15) win; otherwise the first fifteen
// columns that are neither contest nor date are taken in sheet order.
func DetectDrawColumns(headers []string) (DrawColumns, error) {
	var cols DrawColumns
	normalized := make(map[string]string, len(headers))
	for _, h := range headers {
		key := normalizeHeader(h)
		if _, dup := normalized[key]; !dup {
			normalized[key] = h
		}
	}

	cols.Contest = firstHeader(normalized, contestHeaders)
	cols.Date = firstHeader(normalized, dateHeaders)

	for _, prefix := range numberPrefixes {
		family := make([]string, 0, lottery.DrawSize)
		for i := 1; i <= lottery.DrawSize; i++ {
			h, ok := normalized[prefix+strconv.Itoa(i)]
			if !ok {
				break
			}
			family = append(family, h)
		}
		if len(family) == lottery.DrawSize {
			cols.Numbers = family
			return cols, nil
		}
	}

	for _, h := range headers {
		if h == "" || h == cols.Contest || h == cols.Date {
			continue
		}
		cols.Numbers = append(cols.Numbers, h)
		if len(cols.Numbers) == lottery.DrawSize {
			return cols, nil
		}
	}
	return DrawColumns{}, fmt.Errorf("could not detect %d number columns in headers %v", lottery.DrawSize, headers)
}

// ReadDraws parses every non-empty row into a validated draw, oldest contest first
func (r *DataReader) ReadDraws() ([]lottery.Draw, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	cols, err := DetectDrawColumns(data.Headers)
	if err != nil {
		return nil, err
	}

	draws := make([]lottery.Draw, 0, len(data.Rows))
	allNumbered := cols.Contest != ""
	badDates := 0
	for i, row := range data.Rows {
		if rowIsBlank(row, cols.Numbers) {
			continue
		}
		numbers := make([]int, 0, lottery.DrawSize)
		for _, h := range cols.Numbers {
			n, err := parseInt(row[h])
			if err != nil {
				return nil, core.NewInvalidCorpusError(i, fmt.Errorf("column %s: %w", h, err))
			}
			numbers = append(numbers, n)
		}

		contest := 0
		if cols.Contest != "" {
			if contest, err = parseInt(row[cols.Contest]); err != nil {
				contest = 0
			}
		}
		if contest <= 0 {
			allNumbered = false
		}

		var date time.Time
		if cols.Date != "" && row[cols.Date] != "" {
			if date, err = parseDate(row[cols.Date]); err != nil {
				badDates++
			}
		}

		d, err := lottery.NewDraw(contest, date, numbers)
		if err != nil {
			return nil, core.NewInvalidCorpusError(i, err)
		}
		draws = append(draws, d)
	}

	if badDates > 0 {
		r.logger.Warn("%d rows had unparseable dates in %s", badDates, r.filePath)
	}
	if allNumbered {
		sort.SliceStable(draws, func(i, j int) bool { return draws[i].Contest < draws[j].Contest })
	}
	r.logger.Info("Loaded %d draws from %s", len(draws), filepath.Base(r.filePath))
	return draws, nil
}

// LoadCorpus implements ports.CorpusLoader
func (r *DataReader) LoadCorpus(ctx context.Context) (lottery.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return lottery.Corpus{}, err
	}
	draws, err := r.ReadDraws()
	if err != nil {
		return lottery.Corpus{}, err
	}
	return lottery.NewCorpus(draws)
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(h)
}

func firstHeader(normalized map[string]string, candidates []string) string {
	for _, c := range candidates {
		if h, ok := normalized[c]; ok {
			return h
		}
	}
	return ""
}

func rowIsBlank(row RawRowData, headers []string) bool {
	for _, h := range headers {
		if row[h] != "" {
			return false
		}
	}
	return true
}

// parseInt accepts "7", "07" and integral floats such as "7.0"
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

// parseDate accepts the common textual layouts and Excel serial dates
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"lotogen/domain/lottery"
	"lotogen/domain/run"
	"lotogen/domain/stats"

	"github.com/xuri/excelize/v2"
)

const (
	dateLayout = "02/01/2006"
	runSheet   = "Run"
)

// numberHeaders returns D1..D15
func numberHeaders() []string {
	headers := make([]string, lottery.DrawSize)
	for i := range headers {
		headers[i] = "D" + strconv.Itoa(i+1)
	}
	return headers
}

// WriteDraws saves a draw history as Concurso, Data, D1..D15. The format
// follows the file extension and the output reads back with ReadDraws.
func WriteDraws(path string, draws []lottery.Draw) error {
	headers := append([]string{"Concurso", "Data"}, numberHeaders()...)
	rows := make([][]interface{}, 0, len(draws))
	for _, d := range draws {
		row := make([]interface{}, 0, len(headers))
		row = append(row, d.Contest)
		if d.Date.IsZero() {
			row = append(row, "")
		} else {
			row = append(row, d.Date.Format(dateLayout))
		}
		for _, n := range d.Numbers {
			row = append(row, n)
		}
		rows = append(rows, row)
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return writeCSV(path, headers, rows)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := writeSheet(f, DefaultSheet, headers, rows); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// WriteGames exports a run's ranked games to Sheet1 and its parameters to a Run sheet
func WriteGames(path string, r *run.Run) error {
	if r == nil {
		return fmt.Errorf("no run to export")
	}
	headers := append([]string{"Posicao"}, numberHeaders()...)
	for _, field := range stats.Fields {
		headers = append(headers, field.String())
	}
	headers = append(headers, "score")

	rows := make([][]interface{}, 0, len(r.Games))
	for _, g := range r.Games {
		row := make([]interface{}, 0, len(headers))
		row = append(row, g.Position)
		for _, n := range g.Numbers {
			row = append(row, n)
		}
		for _, field := range stats.Fields {
			row = append(row, g.Stats.Value(field))
		}
		if g.Score != nil {
			row = append(row, *g.Score)
		} else {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := writeSheet(f, DefaultSheet, headers, rows); err != nil {
		return err
	}
	if _, err := f.NewSheet(runSheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", runSheet, err)
	}
	meta := [][]interface{}{
		{"run_id", r.ID.String()},
		{"created_at", r.CreatedAt.Format("2006-01-02 15:04:05")},
		{"corpus_hash", r.Fingerprint.CorpusHash.String()},
		{"fingerprint", r.Fingerprint.Fingerprint.String()},
		{"seed", r.Fingerprint.Seed},
		{"target_count", r.TargetCount},
		{"max_attempts", r.MaxAttempts},
		{"attempts_used", r.AttemptsUsed},
		{"exhausted", r.Exhausted},
		{"filter", r.Filter.String()},
	}
	if err := writeSheet(f, runSheet, []string{"key", "value"}, meta); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeCSV(path string, headers []string, rows [][]interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

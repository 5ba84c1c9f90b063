package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/HnM-Co/Yak-Tech/internal/models"
)

// IngestFile loads a spreadsheet, detects its header row, resolves the
// column map and converts the data rows into canonical records. The
// format is picked by extension: .xlsx through excelize, anything else
// as CSV (HIRA also publishes CSV exports of the same list).
//
// A missing file or unresolvable required columns are configuration
// errors for the run; per-row defects are not.
func IngestFile(path string) ([]models.Drug, Stats, error) {
	rows, err := loadRows(path)
	if err != nil {
		return nil, Stats{}, err
	}

	headerIdx := DetectHeaderRow(rows)
	log.Info().Int("header_row", headerIdx).Int("rows", len(rows)).Msg("header row detected")

	if headerIdx >= len(rows) {
		return nil, Stats{}, &MissingColumnsError{Fields: requiredFields}
	}

	cols, err := MapColumns(rows[headerIdx])
	if err != nil {
		return nil, Stats{}, err
	}

	drugs, stats := Ingest(rows[headerIdx+1:], cols)
	return drugs, stats, nil
}

func loadRows(path string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file not found at %q: place the HIRA release file there or set EXCEL_PATH: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path)
	}
	return loadCSV(path)
}

// loadXLSX reads every row of the first sheet as formatted strings.
func loadXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx %q contains no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %q: %w", path, err)
	}
	return rows, nil
}

func loadCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %q: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	// Release files have ragged rows around the header block.
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv %q: %w", path, err)
	}
	return rows, nil
}

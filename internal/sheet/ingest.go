package sheet

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/HnM-Co/Yak-Tech/internal/models"
	"github.com/HnM-Co/Yak-Tech/internal/normalize"
)

// SkipReason classifies why a data row produced no record.
type SkipReason int

const (
	// Accepted means the row produced a record.
	Accepted SkipReason = iota
	// SkipBlankName drops rows with no product name; these are section
	// separators and footnotes, not errors.
	SkipBlankName
	// SkipZeroPrice drops rows whose price normalizes to 0, the "no
	// price data" sentinel.
	SkipZeroPrice
	// SkipMalformedRow drops rows too short to carry the mapped columns.
	SkipMalformedRow
)

// Stats aggregates per-row outcomes of one ingestion run.
type Stats struct {
	Accepted      int
	BlankName     int
	ZeroPrice     int
	MalformedRows int
}

func (s *Stats) count(r SkipReason) {
	switch r {
	case Accepted:
		s.Accepted++
	case SkipBlankName:
		s.BlankName++
	case SkipZeroPrice:
		s.ZeroPrice++
	case SkipMalformedRow:
		s.MalformedRows++
	}
}

// Ingest converts data rows into canonical records using a resolved
// column map, preserving row order. Rows are independent: any defect is
// confined to the row it occurs in and reflected in Stats, never in an
// error.
//
// Unlike the API path, a row without an ingredient-code column gets the
// Unknown sentinel rather than a product-code prefix. The asymmetry
// mirrors how downstream consumers treat the two feeds and is kept
// deliberately.
func Ingest(rows [][]string, cols ColumnMap) ([]models.Drug, Stats) {
	var (
		drugs []models.Drug
		stats Stats
	)

	for _, row := range rows {
		drug, reason := buildRow(row, cols, stats.Accepted)
		stats.count(reason)
		if reason == Accepted {
			drugs = append(drugs, drug)
		}
	}

	log.Info().
		Int("accepted", stats.Accepted).
		Int("blank_name", stats.BlankName).
		Int("zero_price", stats.ZeroPrice).
		Int("malformed", stats.MalformedRows).
		Msg("spreadsheet rows processed")

	return drugs, stats
}

// buildRow resolves a single data row. seq is the zero-based count of
// rows accepted so far, used to synthesize IDs when the sheet has no
// product-code column.
func buildRow(row []string, cols ColumnMap, seq int) (models.Drug, SkipReason) {
	nameIdx := cols[FieldName]
	if nameIdx >= len(row) {
		return models.Drug{}, SkipMalformedRow
	}
	name := normalize.Text(row[nameIdx])
	if name == "" {
		return models.Drug{}, SkipBlankName
	}

	price := normalize.Price(cell(row, cols, FieldPrice))
	if price == 0 {
		return models.Drug{}, SkipZeroPrice
	}

	id := ""
	if _, ok := cols[FieldID]; ok {
		id = normalize.Text(cell(row, cols, FieldID))
	}
	if id == "" {
		id = fmt.Sprintf("%s%d", normalize.SyntheticIDPrefix, seq)
	}

	ingCode := normalize.Text(cell(row, cols, FieldIngredientCode))
	if ingCode == "" {
		ingCode = normalize.UnknownIngredientCode
	}

	ingName := normalize.Text(cell(row, cols, FieldIngredientName))
	if ingName == "" {
		ingName = normalize.UnknownIngredientName
	}

	manufacturer := normalize.Text(cell(row, cols, FieldManufacturer))
	if manufacturer == "" {
		manufacturer = normalize.UnknownManufacturer
	}

	return models.Drug{
		ID:             id,
		Name:           name,
		IngredientCode: ingCode,
		IngredientName: ingName,
		Price:          price,
		Manufacturer:   manufacturer,
		// The release file carries no usable classification; every sheet
		// record gets the fixed default.
		Category: normalize.DefaultCategory,
		Image:    nil,
	}, Accepted
}

// cell returns the raw value for a mapped field, or "" when the field is
// unmapped or the row is too short.
func cell(row []string, cols ColumnMap, f Field) string {
	idx, ok := cols[f]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

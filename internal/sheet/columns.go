// Package sheet ingests the HIRA reimbursement-price spreadsheet. The
// release file changes header position and column wording between
// months, so the header row and the column mapping are both detected
// heuristically before any rows are read.
package sheet

import (
	"fmt"
	"strings"
)

// Field is a canonical drug-record field key resolved from a spreadsheet
// column.
type Field string

const (
	FieldName           Field = "name"
	FieldID             Field = "id"
	FieldPrice          Field = "price"
	FieldManufacturer   Field = "manufacturer"
	FieldIngredientCode Field = "ingredientCode"
	FieldIngredientName Field = "ingredientName"
	FieldCategory       Field = "category"
)

// ColumnMap maps canonical fields to column indexes in the detected
// header row. It is built once per ingestion run and read-only after.
type ColumnMap map[Field]int

// headerPreviewRows bounds how far down the sheet the header row is
// searched for.
const headerPreviewRows = 20

// headerKeywords identify the header row itself: any row mentioning a
// product-name column is taken as the header.
var headerKeywords = []string{"제품명", "약품명"}

// columnRule matches one canonical field against localized column
// wording. Exclusions disambiguate overlapping vocabulary: the
// ingredient-code column ("주성분코드") also contains "코드", so the
// generic product-code rule must reject anything mentioning "주성분",
// and the classification rule must reject numbering columns
// ("분류번호").
type columnRule struct {
	field    Field
	keywords []string
	excludes []string
}

// columnRules is evaluated in order per column; the first matching rule
// wins. More specific vocabulary is listed before the generic rules it
// overlaps with.
var columnRules = []columnRule{
	{FieldName, []string{"제품명", "약품명"}, nil},
	{FieldIngredientCode, []string{"주성분코드"}, nil},
	{FieldIngredientName, []string{"주성분명"}, nil},
	{FieldID, []string{"제품코드", "약가코드"}, []string{"주성분"}},
	{FieldPrice, []string{"상한금액", "가격"}, nil},
	{FieldManufacturer, []string{"업체명", "제약사", "제조사"}, nil},
	{FieldCategory, []string{"분류"}, []string{"번호"}},
}

// requiredFields must resolve or the spreadsheet is unusable.
var requiredFields = []Field{FieldName, FieldPrice}

// MissingColumnsError reports which required canonical fields could not
// be located in the header row.
type MissingColumnsError struct {
	Fields []Field
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("could not locate columns for: %s; check the header row of the HIRA release file",
		strings.Join(names, ", "))
}

// DetectHeaderRow scans up to headerPreviewRows rows and returns the
// index of the first row whose concatenated cells mention a product-name
// column. When nothing matches it falls open to row 0 rather than
// aborting; the column mapping then decides whether the sheet is usable.
func DetectHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > headerPreviewRows {
		limit = headerPreviewRows
	}
	for i := 0; i < limit; i++ {
		joined := strings.Join(rows[i], " ")
		for _, kw := range headerKeywords {
			if strings.Contains(joined, kw) {
				return i
			}
		}
	}
	return 0
}

// MapColumns resolves the header row into a ColumnMap. Whitespace inside
// column names varies between releases and is removed before matching.
// A missing name or price column is a configuration error for the whole
// run.
func MapColumns(header []string) (ColumnMap, error) {
	cols := make(ColumnMap)
	for idx, raw := range header {
		c := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
		if c == "" {
			continue
		}
		if field, ok := matchColumn(c); ok {
			cols[field] = idx
		}
	}

	var missing []Field
	for _, f := range requiredFields {
		if _, ok := cols[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Fields: missing}
	}
	return cols, nil
}

func matchColumn(name string) (Field, bool) {
	for _, rule := range columnRules {
		if !containsAny(name, rule.keywords) {
			continue
		}
		if containsAny(name, rule.excludes) {
			continue
		}
		return rule.field, true
	}
	return "", false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Package normalize turns raw heterogeneous source values (prices, codes,
// names) into the canonical typed fields of the drug catalog.
package normalize

import (
	"strconv"
	"strings"
)

// Sentinel values substituted when a source omits a field.
const (
	// UnknownIngredientCode marks records whose main ingredient cannot be
	// linked. The spreadsheet path uses it directly; the API path first
	// tries a product-code prefix (see IngredientFallback).
	UnknownIngredientCode = "Unknown"

	// UnknownIngredientName is the spreadsheet-path placeholder.
	UnknownIngredientName = "성분명 미상"

	// MixedIngredientName is the API-path placeholder for combination or
	// otherwise unclassified ingredients.
	MixedIngredientName = "복합/기타성분"

	UnknownManufacturer = "알수없음"

	// DefaultCategory applies when a source carries no classification.
	// The HIRA reimbursement list only covers prescription drugs.
	DefaultCategory = "전문의약품"

	// SyntheticIDPrefix prefixes generated IDs when a source has no
	// product code column.
	SyntheticIDPrefix = "TEMP-"
)

// ingredientPrefixLen is the number of leading characters of a HIRA
// product code that identify the main-ingredient group.
const ingredientPrefixLen = 4

// nullMarkers are string renderings of "no value" that upstream tools
// leak into cells and JSON fields.
var nullMarkers = map[string]struct{}{
	"nan":  {},
	"NaN":  {},
	"null": {},
	"NULL": {},
	"None": {},
	"N/A":  {},
	"-":    {},
}

// Text trims a raw value and collapses null markers to the empty string,
// so callers only ever test for "".
func Text(raw string) string {
	s := strings.TrimSpace(raw)
	if _, ok := nullMarkers[s]; ok {
		return ""
	}
	return s
}

// Price extracts a non-negative integer price from an arbitrary raw
// value. Currency symbols, thousands separators, whitespace and any
// other non-digit characters are stripped before parsing. Malformed or
// empty input degrades to 0, which callers treat as "no price data".
// Price never fails.
func Price(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		// Only possible on absurdly long digit runs; treat as no data.
		return 0
	}
	return n
}

// PriceStrict parses a price string that is expected to be numeric apart
// from thousands separators and surrounding whitespace. Unlike Price it
// reports garbage instead of degrading to 0, so the API path can drop
// the item.
func PriceStrict(raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.Atoi(s)
}

// IngredientFallback derives a substitute ingredient code from a product
// code when the source omits an explicit one. The leading characters of
// a HIRA product code encode the main-ingredient group, so the prefix is
// a usable heuristic, not a guaranteed mapping.
func IngredientFallback(productCode string) string {
	r := []rune(productCode)
	if len(r) <= ingredientPrefixLen {
		return productCode
	}
	return string(r[:ingredientPrefixLen])
}

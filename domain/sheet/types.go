package sheet

import (
	"strconv"
	"strings"
)

// Row is one spreadsheet row as produced by the parsing collaborator: a flat
// mapping from column name to a raw scalar (string or float64). A column that
// was empty in the export is simply absent from the map.
type Row map[string]any

// SheetBundle is the inbound batch contract: an ordered sequence of
// single-key objects, each mapping one sheet name to its rows. No nesting
// beyond this two-level shape is accepted; the validator enforces the
// single-key rule per element.
type SheetBundle []map[string][]Row

// RequiredSheetSpec declares one sheet a batch must carry and the columns
// every row of that sheet must contain. Specs are configuration data passed
// into the validator, never read as global state by the engines.
type RequiredSheetSpec struct {
	Name            string
	RequiredColumns []string
}

// Has reports whether the column is present on the row, regardless of value.
func (r Row) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// String returns the row value for column coerced to a trimmed string.
// Numeric cells are formatted without a trailing exponent so identifiers
// that Excel parsed as numbers survive intact. The second return is false
// when the column is absent.
func (r Row) String(column string) (string, bool) {
	v, ok := r[column]
	if !ok {
		return "", false
	}
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// StringPtr returns the trimmed string value of column, or nil when the
// column is absent from the row. Used by the sparse enrichment merges, which
// must distinguish "column not supplied" from "column supplied empty".
func (r Row) StringPtr(column string) *string {
	if !r.Has(column) {
		return nil
	}
	s, _ := r.String(column)
	return &s
}

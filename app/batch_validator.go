package app

import (
	"fmt"

	"sheetmerge/domain/sheet"
	"sheetmerge/internal/errors"
)

// BatchValidator checks a sheet bundle against a required-sheet schema. It
// accumulates every violation instead of short-circuiting; the caller
// decides whether any error blocks persistence.
type BatchValidator struct {
	schema []sheet.RequiredSheetSpec
}

// NewBatchValidator creates a validator for the given schema.
func NewBatchValidator(schema []sheet.RequiredSheetSpec) *BatchValidator {
	return &BatchValidator{schema: schema}
}

// Partition organizes the bundle into a sheet-name map and reports every
// structural and column-level violation. A duplicate sheet keeps its first
// occurrence; a missing required sheet is reported but does not stop column
// checks on the sheets that are present. Row numbers in messages are
// 1-based.
func (v *BatchValidator) Partition(bundle sheet.SheetBundle) (map[string][]sheet.Row, []string) {
	var errs []string
	sheets := make(map[string][]sheet.Row)

	for i, element := range bundle {
		if len(element) != 1 {
			errs = append(errs, errors.Structural(fmt.Sprintf("sheet at index %d should have exactly one sheet name", i)).Error())
			continue
		}
		for name, rows := range element {
			if !v.isDeclared(name) {
				errs = append(errs, errors.Structural(fmt.Sprintf("unexpected sheet name %q at index %d", name, i)).Error())
				continue
			}
			if _, dup := sheets[name]; dup {
				errs = append(errs, errors.Structural(fmt.Sprintf("duplicate sheet name %q", name)).Error())
				continue
			}
			sheets[name] = rows
		}
	}

	for _, spec := range v.schema {
		if _, ok := sheets[spec.Name]; !ok {
			errs = append(errs, errors.Structural(fmt.Sprintf("missing required sheet %q", spec.Name)).Error())
		}
	}

	for _, spec := range v.schema {
		rows, ok := sheets[spec.Name]
		if !ok {
			continue
		}
		for rowIdx, row := range rows {
			for _, col := range spec.RequiredColumns {
				if !row.Has(col) {
					errs = append(errs, errors.RowInvalid(fmt.Sprintf("missing column %q in sheet %q at row %d", col, spec.Name, rowIdx+1)).Error())
				}
			}
		}
	}

	return sheets, errs
}

func (v *BatchValidator) isDeclared(name string) bool {
	for _, spec := range v.schema {
		if spec.Name == name {
			return true
		}
	}
	return false
}

package excel

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetmerge/domain/sheet"
	"sheetmerge/internal/errors"
)

// WorkbookReader turns an .xlsx workbook into a SheetBundle: every sheet
// becomes one bundle element, the first row supplies the column names, and
// the remaining rows become raw Row maps.
type WorkbookReader struct {
	filePath string
}

// NewWorkbookReader creates a reader for the given workbook path.
func NewWorkbookReader(filePath string) *WorkbookReader {
	return &WorkbookReader{filePath: filePath}
}

// ReadBundle reads all sheets of the workbook. Cells are read raw so date
// cells surface as their serial strings and survive until ParseSerial
// normalizes them. Sheets without a header row are skipped.
func (r *WorkbookReader) ReadBundle() (sheet.SheetBundle, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("workbook not found: %s", r.filePath)
	}

	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer f.Close()
	log.Printf("[WorkbookReader] workbook opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	var bundle sheet.SheetBundle
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read sheet %q", name)
		}
		if len(rows) == 0 {
			log.Printf("[WorkbookReader] sheet %q is empty, skipping", name)
			continue
		}
		bundle = append(bundle, map[string][]sheet.Row{
			name: rowsFromCells(rows),
		})
		log.Printf("[WorkbookReader] sheet %q read (%d columns, %d rows)",
			name, len(rows[0]), len(rows)-1)
	}

	if len(bundle) == 0 {
		return nil, fmt.Errorf("workbook has no non-empty sheets: %s", r.filePath)
	}
	return bundle, nil
}

// rowsFromCells converts raw cell rows into Row maps keyed by the trimmed
// header row. Cells past the header width are dropped; cells absent from a
// short row stay absent from the map, matching the sparse-row contract.
func rowsFromCells(rows [][]string) []sheet.Row {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]sheet.Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		rowData := make(sheet.Row)
		empty := true
		for j, cell := range rows[i] {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			rowData[headers[j]] = cell
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
		}
		// Exports routinely carry trailing blank rows; they are noise, not data.
		if empty {
			continue
		}
		dataRows = append(dataRows, rowData)
	}
	return dataRows
}

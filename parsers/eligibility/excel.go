// excel.go renders parsed eligibility records as an Excel (.xlsx) workbook.

package eligibility

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteExcel parses src and returns an .xlsx workbook with a bold header
// row of expanded column names followed by one row per record.
func (d *Dictionary) WriteExcel(src SegmentSource) ([]byte, error) {
	rows, err := d.Rows(src)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"

	// Expanded column names go in row 1, bold.
	for i, col := range d.columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	for i := range d.columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellStyle(sheetName, cell, cell, style)
	}

	// One sheet row per logical record, starting under the header.
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Size each column to its name so narrow keys stay readable.
	for i, col := range d.columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(len(col) + 4)
		if width < 12 {
			width = 12
		}
		f.SetColWidth(sheetName, colName, colName, width)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

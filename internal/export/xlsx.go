// Package export turns BoM results into deliverables: an xlsx workbook and
// an HTML report fragment.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mwaldrop/bomgen/internal/bom"
)

const sheetName = "BoM"

// XLSXContentType is the MIME type for the generated workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes the BoM as a single-sheet workbook with an
// Item/Quantity/Unit/Source header row.
func WriteXLSX(w io.Writer, lines []bom.Line) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &[]any{"Item", "Quantity", "Unit", "Source"}); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx cell: %w", err)
		}
		row := []any{line.Item, line.Quantity, string(line.Unit), string(line.Source)}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

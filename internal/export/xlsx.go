package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/pool-flow-service/internal/domain/model"
)

// Sheet names of the XLSX workbook.
const (
	SheetReport      = "Flow Report"
	SheetCalculation = "Calculation"
)

// WriteXLSX writes a workbook with the flat record on SheetReport and the
// ordered calculation chain on SheetCalculation.
func WriteXLSX(w io.Writer, report model.Report, record model.ExportRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetReport)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetCalculation); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, SheetReport, 1, record.Headers()); err != nil {
		return err
	}
	if err := writeRow(f, SheetReport, 2, record.Values()); err != nil {
		return err
	}
	if len(record.Fields) > 0 {
		last, err := excelize.CoordinatesToCellName(len(record.Fields), 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellStyle(SheetReport, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		lastCol, err := excelize.ColumnNumberToName(len(record.Fields))
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(SheetReport, "A", lastCol, 24); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetPanes(SheetReport, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	if err := writeRow(f, SheetCalculation, 1, []string{"Key", "Operation", "Value"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetCalculation, "A1", "C1", headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	for i, row := range report.Rows {
		if err := writeRow(f, SheetCalculation, i+2, []string{row.Key, row.Label, FormatValue(row.Value)}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetCalculation, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(SheetCalculation, "B", "B", 48); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

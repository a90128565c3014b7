package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hallconsole/internal/console"
	"hallconsole/internal/i18n"

	"github.com/xuri/excelize/v2"
)

// ErrNothingToExport is returned for a view that is still loading or failed to load.
var ErrNothingToExport = errors.New("export: day is not loaded")

const (
	headerRow = 5
	firstRow  = headerRow + 1
)

var rtlLocales = map[string]bool{"ar": true, "fa": true, "he": true, "ur": true}

// WriteDay saves view as bookings_<date>.xlsx under dir and returns the path.
func WriteDay(view console.DayView, catalog *i18n.Catalog, dir string) (string, error) {
	if view.State != console.StateLoaded && view.State != console.StateEmpty {
		return "", ErrNothingToExport
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := view.Day.String()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if rtlLocales[catalog.Locale] {
		rtl := true
		_ = f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl})
	}

	msgs := catalog.Messages
	_ = f.SetCellValue(sheet, "A1", view.Heading)
	_ = f.MergeCell(sheet, "A1", "D1")
	_ = f.SetCellValue(sheet, "A2", msgs.CountLabel)
	_ = f.SetCellValue(sheet, "B2", view.Count)
	_ = f.SetCellValue(sheet, "A3", msgs.HoursLabel)
	_ = f.SetCellValue(sheet, "B3", view.Hours)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	if !view.HasTable() {
		_ = f.SetCellValue(sheet, cellName(1, headerRow), view.Placeholder)
	} else {
		writeTable(f, sheet, view, msgs)
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "D", 22)

	path := filepath.Join(dir, fmt.Sprintf("bookings_%s.xlsx", view.Day.String()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func writeTable(f *excelize.File, sheet string, view console.DayView, msgs i18n.Messages) {
	headers := []string{msgs.ColumnTitle, msgs.ColumnName, msgs.ColumnTime, "ID"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range headers {
		cell := cellName(i+1, headerRow)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, row := range view.Rows {
		r := firstRow + i
		_ = f.SetCellValue(sheet, cellName(1, r), row.Title)
		_ = f.SetCellValue(sheet, cellName(2, r), row.Name)
		_ = f.SetCellValue(sheet, cellName(3, r), row.TimeRange)
		_ = f.SetCellValue(sheet, cellName(4, r), row.ID.String())
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

package fileio

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	excelize "github.com/xuri/excelize/v2"

	"psutier/internal/tier/model"
)

// WriteCSV — результат пакетного разрешения в CSV с заголовком из csv-тегов.
func WriteCSV(w io.Writer, rows []model.BatchRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

var batchColumns = []struct {
	title string
	width float64
}{
	{"Line", 8}, {"Name", 48}, {"Wattage", 10}, {"Tier", 6}, {"Brand", 16},
	{"Series", 32}, {"Efficiency", 16}, {"Strategy", 12}, {"Outcome", 14},
}

const batchSheet = "Tiers"

// WriteXLSX — то же в виде книги Excel: жирная шапка, закреплённая первая строка.
func WriteXLSX(w io.Writer, rows []model.BatchRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", batchSheet); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	header := make([]any, len(batchColumns))
	for i, c := range batchColumns {
		header[i] = c.title
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(batchSheet, col, col, c.width)
	}
	if err := f.SetSheetRow(batchSheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(batchSheet, 1, 1, style)
	}
	_ = f.SetPanes(batchSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		vals := []any{r.Line, r.Name, r.Wattage, r.Tier, r.Brand, r.Series, r.Efficiency, r.Strategy, r.Outcome}
		if err := f.SetSheetRow(batchSheet, cell, &vals); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

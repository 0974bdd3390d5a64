package report

import (
	"fmt"

	"github.com/papudim/sales-report/pkg/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the generated workbook.
const (
	SheetItemsSold    = "Items Sold"
	SheetItemRevenue  = "Revenue by Item"
	SheetDailyRevenue = "Revenue by Date"
)

const (
	defaultSheet      = "Sheet1"
	numFmtTwoDecimals = 2
	firstColumnWidth  = 32
	secondColumnWidth = 16
)

// RenderWorkbook writes the three sorted views into an xlsx workbook.
func RenderWorkbook(s model.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, SheetItemsSold); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetItemRevenue, SheetDailyRevenue} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("add sheet %q: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return nil, fmt.Errorf("money style: %w", err)
	}

	qtyRows := make([][]any, 0, len(s.ItemsByQuantity))
	for _, it := range s.ItemsByQuantity {
		qtyRows = append(qtyRows, []any{it.Name, it.Quantity})
	}
	revRows := make([][]any, 0, len(s.ItemsByRevenue))
	for _, it := range s.ItemsByRevenue {
		revRows = append(revRows, []any{it.Name, it.Revenue.InexactFloat64()})
	}
	dayRows := make([][]any, 0, len(s.Timeline))
	for _, p := range s.Timeline {
		dayRows = append(dayRows, []any{p.Date, p.Revenue.InexactFloat64()})
	}

	sheets := []struct {
		name    string
		columns []any
		rows    [][]any
		style   int
	}{
		{SheetItemsSold, []any{"Item", "Quantity"}, qtyRows, 0},
		{SheetItemRevenue, []any{"Item", "Revenue"}, revRows, money},
		{SheetDailyRevenue, []any{"Date", "Revenue"}, dayRows, money},
	}
	for _, sh := range sheets {
		if err := writeSheet(f, sh.name, sh.columns, sh.rows, header, sh.style); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet fills a two-column sheet. valueStyle, when non-zero, is applied
// to the second column of every data row.
func writeSheet(f *excelize.File, sheet string, columns []any, rows [][]any, header, valueStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", header); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	if valueStyle != 0 && len(rows) > 0 {
		if err := f.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", len(rows)+1), valueStyle); err != nil {
			return fmt.Errorf("%s value style: %w", sheet, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", firstColumnWidth); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", secondColumnWidth)
}

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tradepulse/tradepulse/internal/dashboard"
)

// WriteReportXLSX emits the same sections as the CSV export in a workbook,
// one sheet per section.
func WriteReportXLSX(w io.Writer, rep *dashboard.Report) error {
	book := excelize.NewFile()
	defer func() { _ = book.Close() }()

	if err := metricsSheet(book, rep); err != nil {
		return err
	}

	if err := sheetOf(book, "Daily Trend", []string{"Day", "Revenue", "Cost", "Profit"}, len(rep.DailyTrend), func(i int) []any {
		p := rep.DailyTrend[i]
		return []any{p.Day, p.Revenue, p.Cost, p.Profit}
	}); err != nil {
		return err
	}
	if err := sheetOf(book, "Monthly Trend", []string{"Month", "Revenue", "Cost", "Profit"}, len(rep.MonthlyTrend), func(i int) []any {
		p := rep.MonthlyTrend[i]
		return []any{p.Month, p.Revenue, p.Cost, p.Profit}
	}); err != nil {
		return err
	}
	if err := sheetOf(book, "Clients", []string{"Client", "Orders", "Revenue", "Receivable"}, len(rep.TopClients), func(i int) []any {
		c := rep.TopClients[i]
		return []any{c.Name, c.Orders, c.Revenue, c.Receivable}
	}); err != nil {
		return err
	}
	if err := sheetOf(book, "Vendors", []string{"Vendor", "Purchases", "Gross", "Payable"}, len(rep.TopVendors), func(i int) []any {
		v := rep.TopVendors[i]
		return []any{v.Name, v.Purchases, v.Gross, v.Payable}
	}); err != nil {
		return err
	}
	if err := sheetOf(book, "Products", []string{"Product", "Units", "Revenue", "Cost", "Profit"}, len(rep.TopProducts), func(i int) []any {
		p := rep.TopProducts[i]
		return []any{p.Name, p.Units, p.Revenue, p.Cost, p.Profit}
	}); err != nil {
		return err
	}
	if err := sheetOf(book, "Investments", []string{"Contributor", "Amount", "Share %"}, len(rep.Investments), func(i int) []any {
		inv := rep.Investments[i]
		return []any{inv.Contributor, inv.Amount, inv.Share}
	}); err != nil {
		return err
	}

	// Drop the default sheet left by NewFile.
	_ = book.DeleteSheet("Sheet1")
	return book.Write(w)
}

func metricsSheet(book *excelize.File, rep *dashboard.Report) error {
	const sheet = "Metrics"
	if _, err := book.NewSheet(sheet); err != nil {
		return fmt.Errorf("export: new sheet %s: %w", sheet, err)
	}
	rows := [][]any{
		{"Metric", "Value"},
		{"Category", rep.Category},
		{"Revenue", rep.Metrics.Revenue},
		{"Cost", rep.Metrics.Cost},
		{"Profit", rep.Metrics.Profit},
		{"Receivables", rep.Metrics.Receivables},
		{"Vendor Payables", rep.Metrics.VendorPayables},
		{"ROI %", rep.Metrics.ROI},
		{"Efficiency", rep.Metrics.Efficiency},
		{"Profit Margin %", rep.Metrics.Margin},
		{"Sales", rep.Metrics.SalesCount},
		{"Units Sold", rep.Metrics.UnitsSold},
		{"Investment Total", rep.Metrics.InvestmentTotal},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: write %s: %w", sheet, err)
		}
	}
	return nil
}

func sheetOf(book *excelize.File, sheet string, header []string, n int, row func(int) []any) error {
	if _, err := book.NewSheet(sheet); err != nil {
		return fmt.Errorf("export: new sheet %s: %w", sheet, err)
	}
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := book.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("export: write %s: %w", sheet, err)
	}
	for i := 0; i < n; i++ {
		values := row(i)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		if err := book.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("export: write %s: %w", sheet, err)
		}
	}
	return nil
}

// Package export serialises a dashboard report for download. CSV goes
// through encoding/csv, so any field containing a quote is escaped by
// doubling it and the blob re-parses with a standard reader.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/tradepulse/tradepulse/internal/dashboard"
)

// WriteReportCSV emits every aggregated section as one comma-separated blob.
func WriteReportCSV(w io.Writer, rep *dashboard.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	rows := [][]string{
		{"Metrics"},
		{"Metric", "Value"},
		{"Category", rep.Category},
		{"Revenue", formatFloat(rep.Metrics.Revenue)},
		{"Cost", formatFloat(rep.Metrics.Cost)},
		{"Profit", formatFloat(rep.Metrics.Profit)},
		{"Receivables", formatFloat(rep.Metrics.Receivables)},
		{"Vendor Payables", formatFloat(rep.Metrics.VendorPayables)},
		{"ROI %", formatFloat(rep.Metrics.ROI)},
		{"Efficiency", formatFloat(rep.Metrics.Efficiency)},
		{"Profit Margin %", formatFloat(rep.Metrics.Margin)},
		{"Sales", strconv.Itoa(rep.Metrics.SalesCount)},
		{"Units Sold", formatFloat(rep.Metrics.UnitsSold)},
		{"Investment Total", formatFloat(rep.Metrics.InvestmentTotal)},
	}
	if err := writeAll(writer, rows); err != nil {
		return err
	}

	if err := writeSection(writer, "Daily Trend", []string{"Day", "Revenue", "Cost", "Profit"}, len(rep.DailyTrend), func(i int) []string {
		p := rep.DailyTrend[i]
		return []string{p.Day, formatFloat(p.Revenue), formatFloat(p.Cost), formatFloat(p.Profit)}
	}); err != nil {
		return err
	}

	if err := writeSection(writer, "Monthly Trend", []string{"Month", "Revenue", "Cost", "Profit"}, len(rep.MonthlyTrend), func(i int) []string {
		p := rep.MonthlyTrend[i]
		return []string{p.Month, formatFloat(p.Revenue), formatFloat(p.Cost), formatFloat(p.Profit)}
	}); err != nil {
		return err
	}

	for _, section := range []struct {
		title string
		rows  []dashboard.BreakdownRow
	}{
		{"By Product Type", rep.Bases},
		{"By Side", rep.Sides},
		{"By Colour", rep.Colours},
		{"By Size", rep.Sizes},
	} {
		rows := section.rows
		if err := writeSection(writer, section.title, []string{"Group", "Units", "Revenue", "Cost", "Profit"}, len(rows), func(i int) []string {
			r := rows[i]
			return []string{r.Key, formatFloat(r.Units), formatFloat(r.Revenue), formatFloat(r.Cost), formatFloat(r.Profit)}
		}); err != nil {
			return err
		}
	}

	if err := writeSection(writer, "Top Clients", []string{"Client", "Orders", "Revenue", "Receivable"}, len(rep.TopClients), func(i int) []string {
		c := rep.TopClients[i]
		return []string{c.Name, strconv.Itoa(c.Orders), formatFloat(c.Revenue), formatFloat(c.Receivable)}
	}); err != nil {
		return err
	}

	if err := writeSection(writer, "Top Vendors", []string{"Vendor", "Purchases", "Gross", "Payable"}, len(rep.TopVendors), func(i int) []string {
		v := rep.TopVendors[i]
		return []string{v.Name, strconv.Itoa(v.Purchases), formatFloat(v.Gross), formatFloat(v.Payable)}
	}); err != nil {
		return err
	}

	if err := writeSection(writer, "Top Products", []string{"Product", "Units", "Revenue", "Cost", "Profit"}, len(rep.TopProducts), func(i int) []string {
		p := rep.TopProducts[i]
		return []string{p.Name, formatFloat(p.Units), formatFloat(p.Revenue), formatFloat(p.Cost), formatFloat(p.Profit)}
	}); err != nil {
		return err
	}

	if err := writeSection(writer, "Size Efficiency", []string{"Size", "Area", "Units", "Profit", "Profit Per Area"}, len(rep.SizeEfficiency), func(i int) []string {
		s := rep.SizeEfficiency[i]
		return []string{s.Dims, formatFloat(s.Area), formatFloat(s.Units), formatFloat(s.Profit), formatFloat(s.ProfitPerArea)}
	}); err != nil {
		return err
	}

	if err := writeSection(writer, "Investments", []string{"Contributor", "Amount", "Share %"}, len(rep.Investments), func(i int) []string {
		inv := rep.Investments[i]
		return []string{inv.Contributor, formatFloat(inv.Amount), formatFloat(inv.Share)}
	}); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func writeSection(writer *csv.Writer, title string, header []string, n int, row func(int) []string) error {
	if err := writer.Write([]string{""}); err != nil {
		return err
	}
	if err := writer.Write([]string{title}); err != nil {
		return err
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := writer.Write(row(i)); err != nil {
			return err
		}
	}
	return nil
}

func writeAll(writer *csv.Writer, rows [][]string) error {
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

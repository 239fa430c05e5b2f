package dashboard

import (
	"sort"
	"time"

	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/model"
)

// Aggregate reduces one fetch cycle's rows into the dashboard report. It is a
// pure function of its inputs and keeps no state between calls.
//
// Derivation rules, kept bit-for-bit with the reports this replaces:
//   - Revenue is quantity x unit price summed over matched sale lines. Cost
//     uses the product's recorded purchase price when present, else the
//     line's own unit price. Profit is the difference.
//   - Receivables and vendor payables clamp at zero when payments exceed the
//     computed amount.
//   - Day buckets use the +05:30 business frame, month buckets plain UTC.
//     The mismatch is deliberate; see daterange.MonthKey.
func Aggregate(ds Dataset, q Query, rng daterange.Range, now time.Time) *Report {
	rep := &Report{
		Category:    q.Category,
		From:        rng.Start,
		To:          rng.End,
		GeneratedAt: now,
	}

	products := make(map[string]model.Product, len(ds.Products))
	traits := make(map[string]NameTraits, len(ds.Products))
	for _, p := range ds.Products {
		products[p.ID] = p
		traits[p.ID] = ParseName(p.Name)
	}
	sales := make(map[string]model.Sale, len(ds.Sales))
	for _, s := range ds.Sales {
		sales[s.ID] = s
	}
	clientNames := make(map[string]string, len(ds.Clients))
	for _, c := range ds.Clients {
		clientNames[c.ID] = c.Name
	}
	vendorNames := make(map[string]string, len(ds.Vendors))
	for _, v := range ds.Vendors {
		vendorNames[v.ID] = v.Name
	}
	purchases := make(map[string]model.Purchase, len(ds.Purchases))
	for _, p := range ds.Purchases {
		purchases[p.ID] = p
	}

	daily := newGrouper()
	monthly := newGrouper()
	bases := newGrouper()
	sides := newGrouper()
	colours := newGrouper()
	sizes := newGrouper()
	byProduct := newGrouper()
	byClient := newGrouper()
	clientOrders := map[string]map[string]struct{}{}
	areas := map[string]float64{}
	focusProducts := newGrouper()
	var focus Metrics

	for _, item := range ds.SaleItems {
		sale, ok := sales[item.SaleID]
		if !ok {
			continue
		}
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		revenue := item.Quantity * item.UnitPrice
		cost := item.Quantity * effectiveUnitCost(product, item)

		rep.Metrics.Revenue += revenue
		rep.Metrics.Cost += cost
		rep.Metrics.UnitsSold += item.Quantity

		daily.add(daterange.DayKey(sale.CreatedAt), item.Quantity, revenue, cost)
		monthly.add(daterange.MonthKey(sale.CreatedAt), item.Quantity, revenue, cost)

		tr := traits[product.ID]
		bases.add(tr.Base, item.Quantity, revenue, cost)
		sides.add(tr.Side, item.Quantity, revenue, cost)
		colours.add(tr.Colour, item.Quantity, revenue, cost)
		if tr.Dims != "" {
			sizes.add(tr.Dims, item.Quantity, revenue, cost)
			areas[tr.Dims] = tr.Area
		}
		byProduct.add(product.ID, item.Quantity, revenue, cost)

		byClient.add(sale.ClientID, item.Quantity, revenue, cost)
		orders, ok := clientOrders[sale.ClientID]
		if !ok {
			orders = map[string]struct{}{}
			clientOrders[sale.ClientID] = orders
		}
		orders[sale.ID] = struct{}{}

		if q.FocusClientID != "" && sale.ClientID == q.FocusClientID {
			focus.Revenue += revenue
			focus.Cost += cost
			focus.UnitsSold += item.Quantity
			focusProducts.add(product.ID, item.Quantity, revenue, cost)
		}
	}
	rep.Metrics.Profit = rep.Metrics.Revenue - rep.Metrics.Cost
	rep.Metrics.SalesCount = countSalesWithItems(ds.SaleItems, sales)

	// Sale payments settle receivables, clamped so overpayment never shows
	// as a negative balance.
	paidBySale := map[string]float64{}
	var salePaid float64
	for _, p := range ds.SalePayments {
		if p.Kind != model.PaymentKindSale {
			continue
		}
		paidBySale[p.RefID] += p.Amount
		salePaid += p.Amount
	}
	rep.Metrics.Receivables = clampZero(rep.Metrics.Revenue - salePaid)

	// Vendor side: gross is line quantity x price plus the line's freight
	// share, netted against PURCHASE payments per vendor, clamped per vendor.
	vendorGross := newGrouper()
	vendorPurchases := map[string]map[string]struct{}{}
	for _, item := range ds.PurchaseItems {
		purchase, ok := purchases[item.PurchaseID]
		if !ok {
			continue
		}
		gross := item.Quantity*item.UnitPrice + item.FreightShare
		vendorGross.add(purchase.VendorID, item.Quantity, gross, 0)
		set, ok := vendorPurchases[purchase.VendorID]
		if !ok {
			set = map[string]struct{}{}
			vendorPurchases[purchase.VendorID] = set
		}
		set[purchase.ID] = struct{}{}
	}
	paidByPurchase := map[string]float64{}
	for _, p := range ds.PurchasePayments {
		if p.Kind != model.PaymentKindPurchase {
			continue
		}
		paidByPurchase[p.RefID] += p.Amount
	}

	rep.Metrics.ROI = ratio(rep.Metrics.Profit, rep.Metrics.Cost, 100)
	rep.Metrics.Efficiency = efficiency(rep.Metrics.Revenue, rep.Metrics.Cost)
	rep.Metrics.Margin = ratio(rep.Metrics.Profit, rep.Metrics.Revenue, 100)

	rep.DailyTrend = trendPoints(daily)
	rep.MonthlyTrend = monthPoints(monthly)
	rep.Bases = breakdownRows(bases)
	rep.Sides = breakdownRows(sides)
	rep.Colours = breakdownRows(colours)
	rep.Sizes = breakdownRows(sizes)

	rep.TopClients = topClients(byClient, clientOrders, paidBySale, sales, clientNames)
	vendorRows := rankVendors(vendorGross, vendorPurchases, paidByPurchase, vendorNames)
	for _, row := range vendorRows {
		rep.Metrics.VendorPayables += row.Payable
	}
	rep.TopVendors = truncVendors(vendorRows, TopVendorsLimit)
	rep.TopProducts = topProducts(byProduct, products, TopProductsLimit)
	rep.SizeEfficiency = sizeEfficiency(sizes, areas)
	rep.Investments, rep.Metrics.InvestmentTotal = investmentSplit(ds.Investments)

	if q.FocusClientID != "" {
		focus.Profit = focus.Revenue - focus.Cost
		focus.ROI = ratio(focus.Profit, focus.Cost, 100)
		focus.Efficiency = efficiency(focus.Revenue, focus.Cost)
		focus.Margin = ratio(focus.Profit, focus.Revenue, 100)
		rep.FocusClient = &FocusClient{
			ID:       q.FocusClientID,
			Name:     clientNames[q.FocusClientID],
			Metrics:  focus,
			Products: topProducts(focusProducts, products, 0),
		}
	}

	return rep
}

// effectiveUnitCost prefers the catalogue purchase price and falls back to
// the sale line's own unit price when the product has none recorded.
func effectiveUnitCost(p model.Product, item model.SaleItem) float64 {
	if p.PurchasePrice != nil {
		return *p.PurchasePrice
	}
	return item.UnitPrice
}

// ratio returns numerator/denominator*scale guarding the zero denominator.
func ratio(num, den, scale float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den * scale
}

// efficiency is the bounded [0,100] revenue-to-cost score. Zero cost is
// treated as 1 so a costless sale scores 100, not infinity.
func efficiency(revenue, cost float64) float64 {
	if cost == 0 {
		cost = 1
	}
	score := revenue / cost * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func countSalesWithItems(items []model.SaleItem, sales map[string]model.Sale) int {
	seen := map[string]struct{}{}
	for _, item := range items {
		if _, ok := sales[item.SaleID]; ok {
			seen[item.SaleID] = struct{}{}
		}
	}
	return len(seen)
}

// grouper accumulates units/revenue/cost per key while remembering first-seen
// order, so ties in the ranked sections keep their fetch order under a stable
// sort.
type grouper struct {
	order []string
	rows  map[string]*BreakdownRow
}

func newGrouper() *grouper {
	return &grouper{rows: map[string]*BreakdownRow{}}
}

func (g *grouper) add(key string, units, revenue, cost float64) {
	row, ok := g.rows[key]
	if !ok {
		row = &BreakdownRow{Key: key}
		g.rows[key] = row
		g.order = append(g.order, key)
	}
	row.Units += units
	row.Revenue += revenue
	row.Cost += cost
	row.Profit = row.Revenue - row.Cost
}

func trendPoints(g *grouper) []TrendPoint {
	keys := append([]string(nil), g.order...)
	sort.Strings(keys)
	points := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		row := g.rows[key]
		points = append(points, TrendPoint{Day: key, Revenue: row.Revenue, Cost: row.Cost, Profit: row.Profit})
	}
	return points
}

func monthPoints(g *grouper) []MonthPoint {
	keys := append([]string(nil), g.order...)
	sort.Strings(keys)
	points := make([]MonthPoint, 0, len(keys))
	for _, key := range keys {
		row := g.rows[key]
		points = append(points, MonthPoint{Month: key, Revenue: row.Revenue, Cost: row.Cost, Profit: row.Profit})
	}
	return points
}

func breakdownRows(g *grouper) []BreakdownRow {
	rows := make([]BreakdownRow, 0, len(g.order))
	for _, key := range g.order {
		rows = append(rows, *g.rows[key])
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Revenue > rows[j].Revenue })
	return rows
}

func topClients(byClient *grouper, orders map[string]map[string]struct{}, paidBySale map[string]float64, sales map[string]model.Sale, names map[string]string) []ClientRow {
	rows := make([]ClientRow, 0, len(byClient.order))
	for _, clientID := range byClient.order {
		agg := byClient.rows[clientID]
		var paid float64
		for saleID := range orders[clientID] {
			paid += paidBySale[saleID]
		}
		rows = append(rows, ClientRow{
			ID:         clientID,
			Name:       names[clientID],
			Orders:     len(orders[clientID]),
			Revenue:    agg.Revenue,
			Receivable: clampZero(agg.Revenue - paid),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Revenue > rows[j].Revenue })
	return truncClients(rows, TopClientsLimit)
}

// rankVendors builds one row per vendor, sorted descending by gross. The
// payable is clamped per vendor; truncation and totals are the caller's job.
func rankVendors(gross *grouper, vendorPurchases map[string]map[string]struct{}, paidByPurchase map[string]float64, names map[string]string) []VendorRow {
	rows := make([]VendorRow, 0, len(gross.order))
	for _, vendorID := range gross.order {
		agg := gross.rows[vendorID]
		var paid float64
		for purchaseID := range vendorPurchases[vendorID] {
			paid += paidByPurchase[purchaseID]
		}
		rows = append(rows, VendorRow{
			ID:        vendorID,
			Name:      names[vendorID],
			Purchases: len(vendorPurchases[vendorID]),
			Gross:     agg.Revenue,
			Payable:   clampZero(agg.Revenue - paid),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Gross > rows[j].Gross })
	return rows
}

func topProducts(byProduct *grouper, products map[string]model.Product, limit int) []ProductRow {
	rows := make([]ProductRow, 0, len(byProduct.order))
	for _, productID := range byProduct.order {
		agg := byProduct.rows[productID]
		rows = append(rows, ProductRow{
			ID:      productID,
			Name:    products[productID].Name,
			Units:   agg.Units,
			Revenue: agg.Revenue,
			Cost:    agg.Cost,
			Profit:  agg.Profit,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Profit > rows[j].Profit })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func sizeEfficiency(sizes *grouper, areas map[string]float64) []SizeEfficiencyRow {
	rows := make([]SizeEfficiencyRow, 0, len(sizes.order))
	for _, dims := range sizes.order {
		area := areas[dims]
		if area <= 0 {
			continue
		}
		agg := sizes.rows[dims]
		rows = append(rows, SizeEfficiencyRow{
			Dims:          dims,
			Area:          area,
			Units:         agg.Units,
			Profit:        agg.Profit,
			ProfitPerArea: agg.Profit / area,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ProfitPerArea > rows[j].ProfitPerArea })
	return rows
}

func investmentSplit(investments []model.Investment) ([]InvestorShare, float64) {
	byName := newGrouper()
	var total float64
	for _, inv := range investments {
		byName.add(inv.Contributor, 0, inv.Amount, 0)
		total += inv.Amount
	}
	shares := make([]InvestorShare, 0, len(byName.order))
	for _, name := range byName.order {
		amount := byName.rows[name].Revenue
		shares = append(shares, InvestorShare{
			Contributor: name,
			Amount:      amount,
			Share:       ratio(amount, total, 100),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Amount > shares[j].Amount })
	return shares, total
}

func truncClients(rows []ClientRow, limit int) []ClientRow {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func truncVendors(rows []VendorRow, limit int) []VendorRow {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

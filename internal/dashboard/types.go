package dashboard

import (
	"time"

	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/model"
)

// Top-N caps for the ranked report sections.
const (
	TopClientsLimit  = 10
	TopVendorsLimit  = 10
	TopProductsLimit = 15
)

// Query scopes one dashboard load.
type Query struct {
	Category      string
	Preset        daterange.Preset
	CustomFrom    string
	CustomTo      string
	FocusClientID string
}

// Dataset carries the raw rows of one fetch cycle. It is either complete or
// discarded; no partial dataset ever reaches the aggregator.
type Dataset struct {
	Products         []model.Product
	Sales            []model.Sale
	SaleItems        []model.SaleItem
	Clients          []model.Client
	SalePayments     []model.Payment
	PurchaseItems    []model.PurchaseItem
	Purchases        []model.Purchase
	Vendors          []model.Vendor
	PurchasePayments []model.Payment
	Investments      []model.Investment
}

// Metrics are the KPI tile values.
type Metrics struct {
	Revenue         float64 `json:"revenue"`
	Cost            float64 `json:"cost"`
	Profit          float64 `json:"profit"`
	Receivables     float64 `json:"receivables"`
	VendorPayables  float64 `json:"vendor_payables"`
	ROI             float64 `json:"roi"`
	Efficiency      float64 `json:"efficiency"`
	Margin          float64 `json:"margin"`
	SalesCount      int     `json:"sales_count"`
	UnitsSold       float64 `json:"units_sold"`
	InvestmentTotal float64 `json:"investment_total"`
}

// TrendPoint is one calendar day in the business frame.
type TrendPoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// MonthPoint is one plain-UTC month bucket.
type MonthPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// BreakdownRow groups sold line items by a derived product attribute.
type BreakdownRow struct {
	Key     string  `json:"key"`
	Units   float64 `json:"units"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// ClientRow ranks a client by revenue.
type ClientRow struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Orders     int     `json:"orders"`
	Revenue    float64 `json:"revenue"`
	Receivable float64 `json:"receivable"`
}

// VendorRow ranks a vendor by purchase gross.
type VendorRow struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Purchases int     `json:"purchases"`
	Gross     float64 `json:"gross"`
	Payable   float64 `json:"payable"`
}

// ProductRow ranks a product by profit.
type ProductRow struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Units   float64 `json:"units"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// SizeEfficiencyRow reports profit per unit of printed area for one
// WIDTHxHEIGHT dimension group.
type SizeEfficiencyRow struct {
	Dims          string  `json:"dims"`
	Area          float64 `json:"area"`
	Units         float64 `json:"units"`
	Profit        float64 `json:"profit"`
	ProfitPerArea float64 `json:"profit_per_area"`
}

// InvestorShare is one partner's slice of total contributed capital.
type InvestorShare struct {
	Contributor string  `json:"contributor"`
	Amount      float64 `json:"amount"`
	Share       float64 `json:"share"`
}

// FocusClient is the secondary breakdown for one selected client.
type FocusClient struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Metrics  Metrics      `json:"metrics"`
	Products []ProductRow `json:"products"`
}

// Report is the full aggregation output for one dashboard load. It has no
// lifecycle of its own: recomputed on every fetch cycle, replaced on the next.
type Report struct {
	Category       string              `json:"category"`
	From           *time.Time          `json:"from"`
	To             *time.Time          `json:"to"`
	GeneratedAt    time.Time           `json:"generated_at"`
	Metrics        Metrics             `json:"metrics"`
	DailyTrend     []TrendPoint        `json:"daily_trend"`
	MonthlyTrend   []MonthPoint        `json:"monthly_trend"`
	Bases          []BreakdownRow      `json:"bases"`
	Sides          []BreakdownRow      `json:"sides"`
	Colours        []BreakdownRow      `json:"colours"`
	Sizes          []BreakdownRow      `json:"sizes"`
	TopClients     []ClientRow         `json:"top_clients"`
	TopVendors     []VendorRow         `json:"top_vendors"`
	TopProducts    []ProductRow        `json:"top_products"`
	SizeEfficiency []SizeEfficiencyRow `json:"size_efficiency"`
	Investments    []InvestorShare     `json:"investments"`
	FocusClient    *FocusClient        `json:"focus_client,omitempty"`
}

// Package model holds the entities served by the hosted backend. All of them
// are read-only from this service's point of view except Product (created via
// the add-product form) and Investment (created and deleted here).
package model

import "time"

// Product categories are a fixed classification; every dashboard view is
// scoped to exactly one of them.
const (
	CategoryPackages  = "Packages"
	CategoryGroceries = "Groceries"
	CategoryOil       = "Oil"
)

// Categories lists the valid product categories in display order.
var Categories = []string{CategoryPackages, CategoryGroceries, CategoryOil}

// Payment kinds discriminate which ledger a payment belongs to.
const (
	PaymentKindSale     = "SALE"
	PaymentKindPurchase = "PURCHASE"
)

// Purchase statuses as recorded by the backend.
const (
	PurchaseStatusOpen   = "Open"
	PurchaseStatusClosed = "Closed"
)

// Product is a catalogue entry. PurchasePrice is nullable; cost derivations
// fall back to the transaction line's own unit price when it is absent.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PurchasePrice *float64 `json:"purchase_price"`
	SellingPrice  float64  `json:"selling_price"`
	TaxRate       float64  `json:"tax_rate"`
	Unit          string   `json:"unit"`
	Category      string   `json:"category"`
	Active        bool     `json:"active"`
	Description   string   `json:"description,omitempty"`
	HSNCode       string   `json:"hsn_code,omitempty"`
}

// Sale is a sale header; monetary detail lives on the line items.
type Sale struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// SaleItem is one line of a sale.
type SaleItem struct {
	ID        string  `json:"id"`
	SaleID    string  `json:"sale_id"`
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Purchase is a purchase header.
type Purchase struct {
	ID           string    `json:"id"`
	VendorID     string    `json:"vendor_id"`
	Status       string    `json:"status"`
	FreightTotal float64   `json:"freight_total"`
	CreatedAt    time.Time `json:"created_at"`
}

// PurchaseItem is one line of a purchase. FreightShare is this line's slice of
// the header freight total and counts toward the vendor-payable gross.
type PurchaseItem struct {
	ID           string  `json:"id"`
	PurchaseID   string  `json:"purchase_id"`
	ProductID    string  `json:"product_id"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	FreightShare float64 `json:"freight_share"`
}

// Payment settles (part of) a sale or purchase, discriminated by Kind.
type Payment struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	RefID  string    `json:"ref_id"`
	Amount float64   `json:"amount"`
	PaidAt time.Time `json:"paid_at"`
}

// Client is a buying party.
type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Vendor is a supplying party.
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Investment is a capital contribution by one of the fixed partners.
type Investment struct {
	ID          string    `json:"id"`
	Contributor string    `json:"contributor"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// InventoryLevel is a row of the read-only order_inventory view. Available
// can go negative when orders outrun stock; the dashboard only warns on it.
type InventoryLevel struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Available   float64 `json:"available"`
}

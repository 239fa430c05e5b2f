// Package store defines the persistence contract for the dashboard. The
// backend is a remote row-query service; two implementations exist, one
// speaking its REST filter surface and one speaking SQL directly.
package store

import (
	"context"
	"errors"

	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/model"
)

// MaxRows caps every table read. Rows beyond the cap are silently truncated
// by the backend, so totals computed from a table that actually holds more
// than MaxRows matching rows will be understated. Raise it before the data
// grows anywhere near this size.
const MaxRows = 50000

// ErrNotFound reports a write that matched no row.
var ErrNotFound = errors.New("store: not found")

// Store is the full query surface used by the dashboard and record entry.
// Read methods with an id-list argument must return an empty result, without
// contacting the backend, when the list is empty.
type Store interface {
	ActiveProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	SalesInRange(ctx context.Context, r daterange.Range) ([]model.Sale, error)
	SaleItemsFor(ctx context.Context, saleIDs, productIDs []string) ([]model.SaleItem, error)
	ClientsByID(ctx context.Context, ids []string) ([]model.Client, error)
	PaymentsFor(ctx context.Context, kind string, refIDs []string, r daterange.Range) ([]model.Payment, error)
	PurchaseItemsForProducts(ctx context.Context, productIDs []string) ([]model.PurchaseItem, error)
	PurchasesByID(ctx context.Context, ids []string, r daterange.Range) ([]model.Purchase, error)
	VendorsByID(ctx context.Context, ids []string) ([]model.Vendor, error)
	Investments(ctx context.Context) ([]model.Investment, error)
	InventoryLevels(ctx context.Context) ([]model.InventoryLevel, error)

	InsertProduct(ctx context.Context, p model.Product) (model.Product, error)
	InsertInvestment(ctx context.Context, inv model.Investment) (model.Investment, error)
	DeleteInvestment(ctx context.Context, id string) error
}

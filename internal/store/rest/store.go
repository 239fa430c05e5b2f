// Package reststore implements store.Store against the hosted row-query
// backend's REST filter surface.
package reststore

import (
	"context"
	"fmt"

	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/model"
	"github.com/tradepulse/tradepulse/internal/platform/restq"
	"github.com/tradepulse/tradepulse/internal/store"
)

// Store speaks the backend's filter dialect through a restq.Client.
type Store struct {
	client *restq.Client
}

// New wraps a restq client.
func New(client *restq.Client) *Store {
	return &Store{client: client}
}

var _ store.Store = (*Store)(nil)

func (s *Store) ActiveProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	q := restq.NewQuery().
		Eq("category", category).
		Eq("active", "true").
		OrderAsc("name").
		Limit(store.MaxRows)
	var rows []model.Product
	if err := s.client.Select(ctx, "products", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return rows, nil
}

func (s *Store) SalesInRange(ctx context.Context, r daterange.Range) ([]model.Sale, error) {
	q := restq.NewQuery().OrderAsc("created_at").Limit(store.MaxRows)
	applyRange(q, "created_at", r)
	var rows []model.Sale
	if err := s.client.Select(ctx, "sales", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch sales: %w", err)
	}
	return rows, nil
}

func (s *Store) SaleItemsFor(ctx context.Context, saleIDs, productIDs []string) ([]model.SaleItem, error) {
	if len(saleIDs) == 0 || len(productIDs) == 0 {
		return nil, nil
	}
	q := restq.NewQuery().
		In("sale_id", saleIDs).
		In("product_id", productIDs).
		Limit(store.MaxRows)
	var rows []model.SaleItem
	if err := s.client.Select(ctx, "sales_items", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch sale items: %w", err)
	}
	return rows, nil
}

func (s *Store) ClientsByID(ctx context.Context, ids []string) ([]model.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := restq.NewQuery().In("id", ids).Limit(store.MaxRows)
	var rows []model.Client
	if err := s.client.Select(ctx, "clients", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch clients: %w", err)
	}
	return rows, nil
}

func (s *Store) PaymentsFor(ctx context.Context, kind string, refIDs []string, r daterange.Range) ([]model.Payment, error) {
	if len(refIDs) == 0 {
		return nil, nil
	}
	q := restq.NewQuery().
		Eq("kind", kind).
		In("ref_id", refIDs).
		Limit(store.MaxRows)
	applyRange(q, "paid_at", r)
	var rows []model.Payment
	if err := s.client.Select(ctx, "payments", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch %s payments: %w", kind, err)
	}
	return rows, nil
}

func (s *Store) PurchaseItemsForProducts(ctx context.Context, productIDs []string) ([]model.PurchaseItem, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	q := restq.NewQuery().In("product_id", productIDs).Limit(store.MaxRows)
	var rows []model.PurchaseItem
	if err := s.client.Select(ctx, "purchase_items", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch purchase items: %w", err)
	}
	return rows, nil
}

func (s *Store) PurchasesByID(ctx context.Context, ids []string, r daterange.Range) ([]model.Purchase, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := restq.NewQuery().In("id", ids).OrderAsc("created_at").Limit(store.MaxRows)
	applyRange(q, "created_at", r)
	var rows []model.Purchase
	if err := s.client.Select(ctx, "purchases", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch purchases: %w", err)
	}
	return rows, nil
}

func (s *Store) VendorsByID(ctx context.Context, ids []string) ([]model.Vendor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := restq.NewQuery().In("id", ids).Limit(store.MaxRows)
	var rows []model.Vendor
	if err := s.client.Select(ctx, "vendors", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch vendors: %w", err)
	}
	return rows, nil
}

func (s *Store) Investments(ctx context.Context) ([]model.Investment, error) {
	q := restq.NewQuery().OrderDesc("created_at").Limit(store.MaxRows)
	var rows []model.Investment
	if err := s.client.Select(ctx, "investments", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch investments: %w", err)
	}
	return rows, nil
}

func (s *Store) InventoryLevels(ctx context.Context) ([]model.InventoryLevel, error) {
	q := restq.NewQuery().Limit(store.MaxRows)
	var rows []model.InventoryLevel
	if err := s.client.Select(ctx, "order_inventory", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}
	return rows, nil
}

func (s *Store) InsertProduct(ctx context.Context, p model.Product) (model.Product, error) {
	var created model.Product
	if err := s.client.Insert(ctx, "products", p, &created); err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (s *Store) InsertInvestment(ctx context.Context, inv model.Investment) (model.Investment, error) {
	var created model.Investment
	if err := s.client.Insert(ctx, "investments", inv, &created); err != nil {
		return model.Investment{}, fmt.Errorf("insert investment: %w", err)
	}
	return created, nil
}

func (s *Store) DeleteInvestment(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "investments", restq.NewQuery().Eq("id", id)); err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	return nil
}

func applyRange(q *restq.Query, column string, r daterange.Range) {
	if r.Start != nil {
		q.Gte(column, restq.Timestamp(*r.Start))
	}
	if r.End != nil {
		q.Lte(column, restq.Timestamp(*r.End))
	}
}

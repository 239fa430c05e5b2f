// Package pgstore implements store.Store directly against PostgreSQL for
// deployments that can reach the database without the hosted REST gateway.
// Queries mirror the REST filter plan one-to-one, including the row cap.
package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/model"
	"github.com/tradepulse/tradepulse/internal/store"
)

// Store talks to PostgreSQL through a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps a connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ store.Store = (*Store)(nil)

func (s *Store) ActiveProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	const query = `
		SELECT id, name, purchase_price, selling_price, tax_rate, unit,
		       category, active, COALESCE(description, ''), COALESCE(hsn_code, '')
		FROM products
		WHERE category = $1 AND active = TRUE
		ORDER BY name
		LIMIT $2`
	rows, err := s.pool.Query(ctx, query, category, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PurchasePrice, &p.SellingPrice, &p.TaxRate,
			&p.Unit, &p.Category, &p.Active, &p.Description, &p.HSNCode); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) SalesInRange(ctx context.Context, r daterange.Range) ([]model.Sale, error) {
	const query = `
		SELECT id, client_id, delivered, created_at
		FROM sales
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at
		LIMIT $3`
	rows, err := s.pool.Query(ctx, query, r.Start, r.End, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch sales: %w", err)
	}
	defer rows.Close()

	var out []model.Sale
	for rows.Next() {
		var sale model.Sale
		if err := rows.Scan(&sale.ID, &sale.ClientID, &sale.Delivered, &sale.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, sale)
	}
	return out, rows.Err()
}

func (s *Store) SaleItemsFor(ctx context.Context, saleIDs, productIDs []string) ([]model.SaleItem, error) {
	if len(saleIDs) == 0 || len(productIDs) == 0 {
		return nil, nil
	}
	const query = `
		SELECT id, sale_id, product_id, quantity, unit_price
		FROM sales_items
		WHERE sale_id = ANY($1) AND product_id = ANY($2)
		LIMIT $3`
	rows, err := s.pool.Query(ctx, query, saleIDs, productIDs, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch sale items: %w", err)
	}
	defer rows.Close()

	var out []model.SaleItem
	for rows.Next() {
		var item model.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) ClientsByID(ctx context.Context, ids []string) ([]model.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM clients WHERE id = ANY($1) LIMIT $2`, ids, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch clients: %w", err)
	}
	defer rows.Close()

	var out []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) PaymentsFor(ctx context.Context, kind string, refIDs []string, r daterange.Range) ([]model.Payment, error) {
	if len(refIDs) == 0 {
		return nil, nil
	}
	const query = `
		SELECT id, kind, ref_id, amount, paid_at
		FROM payments
		WHERE kind = $1 AND ref_id = ANY($2)
		  AND ($3::timestamptz IS NULL OR paid_at >= $3)
		  AND ($4::timestamptz IS NULL OR paid_at <= $4)
		LIMIT $5`
	rows, err := s.pool.Query(ctx, query, kind, refIDs, r.Start, r.End, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch %s payments: %w", kind, err)
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.Kind, &p.RefID, &p.Amount, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) PurchaseItemsForProducts(ctx context.Context, productIDs []string) ([]model.PurchaseItem, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	const query = `
		SELECT id, purchase_id, product_id, quantity, unit_price, freight_share
		FROM purchase_items
		WHERE product_id = ANY($1)
		LIMIT $2`
	rows, err := s.pool.Query(ctx, query, productIDs, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch purchase items: %w", err)
	}
	defer rows.Close()

	var out []model.PurchaseItem
	for rows.Next() {
		var item model.PurchaseItem
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.FreightShare); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) PurchasesByID(ctx context.Context, ids []string, r daterange.Range) ([]model.Purchase, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
		SELECT id, vendor_id, status, freight_total, created_at
		FROM purchases
		WHERE id = ANY($1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at
		LIMIT $4`
	rows, err := s.pool.Query(ctx, query, ids, r.Start, r.End, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch purchases: %w", err)
	}
	defer rows.Close()

	var out []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Status, &p.FreightTotal, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) VendorsByID(ctx context.Context, ids []string) ([]model.Vendor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM vendors WHERE id = ANY($1) LIMIT $2`, ids, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch vendors: %w", err)
	}
	defer rows.Close()

	var out []model.Vendor
	for rows.Next() {
		var v model.Vendor
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) Investments(ctx context.Context) ([]model.Investment, error) {
	const query = `
		SELECT id, contributor, amount, created_at
		FROM investments
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := s.pool.Query(ctx, query, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch investments: %w", err)
	}
	defer rows.Close()

	var out []model.Investment
	for rows.Next() {
		var inv model.Investment
		if err := rows.Scan(&inv.ID, &inv.Contributor, &inv.Amount, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (s *Store) InventoryLevels(ctx context.Context) ([]model.InventoryLevel, error) {
	const query = `
		SELECT product_id, product_name, available
		FROM order_inventory
		LIMIT $1`
	rows, err := s.pool.Query(ctx, query, store.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}
	defer rows.Close()

	var out []model.InventoryLevel
	for rows.Next() {
		var level model.InventoryLevel
		if err := rows.Scan(&level.ProductID, &level.ProductName, &level.Available); err != nil {
			return nil, fmt.Errorf("scan inventory level: %w", err)
		}
		out = append(out, level)
	}
	return out, rows.Err()
}

func (s *Store) InsertProduct(ctx context.Context, p model.Product) (model.Product, error) {
	const query = `
		INSERT INTO products (id, name, purchase_price, selling_price, tax_rate,
		                      unit, category, active, description, hsn_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := s.pool.QueryRow(ctx, query, p.ID, p.Name, p.PurchasePrice, p.SellingPrice,
		p.TaxRate, p.Unit, p.Category, p.Active, p.Description, p.HSNCode).Scan(&p.ID)
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (s *Store) InsertInvestment(ctx context.Context, inv model.Investment) (model.Investment, error) {
	const query = `
		INSERT INTO investments (id, contributor, amount, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, contributor, amount, created_at`
	err := s.pool.QueryRow(ctx, query, inv.ID, inv.Contributor, inv.Amount, inv.CreatedAt).
		Scan(&inv.ID, &inv.Contributor, &inv.Amount, &inv.CreatedAt)
	if err != nil {
		return model.Investment{}, fmt.Errorf("insert investment: %w", err)
	}
	return inv, nil
}

func (s *Store) DeleteInvestment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/model"
)

// fetch runs the fixed join plan. The sale and purchase chains depend on each
// step's output and stay sequential; the investments table has no dependency
// and loads alongside them. Any failure aborts the whole cycle and discards
// partial results.
func (s *Service) fetch(ctx context.Context, q Query, rng daterange.Range) (Dataset, error) {
	var ds Dataset

	products, err := s.store.ActiveProductsByCategory(ctx, q.Category)
	if err != nil {
		return Dataset{}, fmt.Errorf("dashboard: %w", err)
	}
	if len(products) == 0 {
		// No catalogue for this category: an all-zero report, no further reads.
		return Dataset{}, nil
	}
	ds.Products = products
	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		investments, err := s.store.Investments(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		ds.Investments = investments
		return nil
	})

	g.Go(func() error {
		if err := s.fetchSalesSide(gctx, &ds, productIDs, rng); err != nil {
			return err
		}
		return s.fetchPurchaseSide(gctx, &ds, productIDs, rng)
	})

	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func (s *Service) fetchSalesSide(ctx context.Context, ds *Dataset, productIDs []string, rng daterange.Range) error {
	sales, err := s.store.SalesInRange(ctx, rng)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	ds.Sales = sales
	if len(sales) == 0 {
		return nil
	}

	saleIDs := make([]string, 0, len(sales))
	for _, sale := range sales {
		saleIDs = append(saleIDs, sale.ID)
	}
	items, err := s.store.SaleItemsFor(ctx, saleIDs, productIDs)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	ds.SaleItems = items
	if len(items) == 0 {
		return nil
	}

	// Only sales that actually sold something in this category matter for
	// the client join and the payment match.
	matchedSales := map[string]struct{}{}
	for _, item := range items {
		matchedSales[item.SaleID] = struct{}{}
	}
	clientIDs := map[string]struct{}{}
	matchedSaleIDs := make([]string, 0, len(matchedSales))
	for _, sale := range sales {
		if _, ok := matchedSales[sale.ID]; !ok {
			continue
		}
		matchedSaleIDs = append(matchedSaleIDs, sale.ID)
		clientIDs[sale.ClientID] = struct{}{}
	}

	clients, err := s.store.ClientsByID(ctx, keys(clientIDs))
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	ds.Clients = clients

	payments, err := s.store.PaymentsFor(ctx, model.PaymentKindSale, matchedSaleIDs, rng)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	ds.SalePayments = payments
	return nil
}

func (s *Service) fetchPurchaseSide(ctx context.Context, ds *Dataset, productIDs []string, rng daterange.Range) error {
	items, err := s.store.PurchaseItemsForProducts(ctx, productIDs)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	ds.PurchaseItems = items
	if len(items) == 0 {
		return nil
	}

	purchaseIDs := map[string]struct{}{}
	for _, item := range items {
		purchaseIDs[item.PurchaseID] = struct{}{}
	}
	purchases, err := s.store.PurchasesByID(ctx, keys(purchaseIDs), rng)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	ds.Purchases = purchases
	if len(purchases) == 0 {
		return nil
	}

	vendorIDs := map[string]struct{}{}
	keptPurchaseIDs := make([]string, 0, len(purchases))
	for _, purchase := range purchases {
		keptPurchaseIDs = append(keptPurchaseIDs, purchase.ID)
		vendorIDs[purchase.VendorID] = struct{}{}
	}

	vendors, err := s.store.VendorsByID(ctx, keys(vendorIDs))
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	ds.Vendors = vendors

	payments, err := s.store.PaymentsFor(ctx, model.PaymentKindPurchase, keptPurchaseIDs, rng)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	ds.PurchasePayments = payments
	return nil
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

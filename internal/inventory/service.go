// Package inventory surfaces stock warnings from the order inventory view.
// Available quantities can go negative when orders outrun stock; those rows
// become warnings the dashboard shows until the user dismisses them.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tradepulse/tradepulse/internal/store"
)

// Warning flags one product that is oversold.
type Warning struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Shortfall   float64 `json:"shortfall"`
}

// Service reads inventory levels and derives warnings.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService constructs the inventory service.
func NewService(st store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Warnings returns oversold products ordered by largest shortfall first.
func (s *Service) Warnings(ctx context.Context) ([]Warning, error) {
	levels, err := s.store.InventoryLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory levels: %w", err)
	}

	warnings := make([]Warning, 0)
	for _, lvl := range levels {
		if lvl.Available >= 0 {
			continue
		}
		warnings = append(warnings, Warning{
			ProductID:   lvl.ProductID,
			ProductName: lvl.ProductName,
			Shortfall:   -lvl.Available,
		})
	}
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Shortfall > warnings[j].Shortfall
	})

	if len(warnings) > 0 {
		s.logger.Warn("oversold products detected", slog.Int("count", len(warnings)))
	}
	return warnings, nil
}

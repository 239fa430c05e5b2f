// Package records handles manual data entry: new products and the partner
// investment ledger. Writes go through the same store as the dashboard reads.
package records

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tradepulse/tradepulse/internal/model"
	"github.com/tradepulse/tradepulse/internal/platform/httpx"
	"github.com/tradepulse/tradepulse/internal/store"
)

// ProductInput is the form payload for a new product.
type ProductInput struct {
	Name          string   `json:"name" validate:"required,max=200"`
	PurchasePrice *float64 `json:"purchase_price" validate:"omitempty,gte=0"`
	SellingPrice  float64  `json:"selling_price" validate:"gte=0"`
	TaxRate       float64  `json:"tax_rate" validate:"gte=0,lte=100"`
	Unit          string   `json:"unit" validate:"omitempty,max=20"`
	Category      string   `json:"category" validate:"required"`
	Description   string   `json:"description" validate:"max=500"`
	HSNCode       string   `json:"hsn_code" validate:"max=20"`
}

// InvestmentInput is the form payload for a partner contribution.
type InvestmentInput struct {
	Contributor string  `json:"contributor" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
}

// Service validates and persists record-entry submissions.
type Service struct {
	store    store.Store
	logger   *slog.Logger
	validate *validator.Validate
	partners map[string]struct{}
	now      func() time.Time
}

// NewService constructs the record-entry service. partners is the closed set
// of contributor names allowed on investments.
func NewService(st store.Store, logger *slog.Logger, partners []string) *Service {
	set := make(map[string]struct{}, len(partners))
	for _, p := range partners {
		p = strings.TrimSpace(p)
		if p != "" {
			set[p] = struct{}{}
		}
	}
	return &Service{
		store:    st,
		logger:   logger,
		validate: validator.New(),
		partners: set,
		now:      time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Partners returns the configured contributor names in no particular order.
func (s *Service) Partners() []string {
	out := make([]string, 0, len(s.partners))
	for p := range s.partners {
		out = append(out, p)
	}
	return out
}

// CreateProduct validates the input and inserts an active product.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return model.Product{}, fmt.Errorf("%w: %s", httpx.ErrValidation, firstFieldError(err))
	}
	if !validCategory(in.Category) {
		return model.Product{}, fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, in.Category)
	}

	p := model.Product{
		Name:          in.Name,
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		TaxRate:       in.TaxRate,
		Unit:          in.Unit,
		Category:      in.Category,
		Active:        true,
		Description:   strings.TrimSpace(in.Description),
		HSNCode:       strings.TrimSpace(in.HSNCode),
	}
	created, err := s.store.InsertProduct(ctx, p)
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}
	s.logger.Info("product created",
		slog.String("id", created.ID),
		slog.String("category", created.Category))
	return created, nil
}

// CreateInvestment validates the input and inserts a contribution row.
func (s *Service) CreateInvestment(ctx context.Context, in InvestmentInput) (model.Investment, error) {
	in.Contributor = strings.TrimSpace(in.Contributor)
	if err := s.validate.Struct(in); err != nil {
		return model.Investment{}, fmt.Errorf("%w: %s", httpx.ErrValidation, firstFieldError(err))
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return model.Investment{}, fmt.Errorf("%w: amount must be a finite number", httpx.ErrValidation)
	}
	if _, ok := s.partners[in.Contributor]; !ok {
		return model.Investment{}, fmt.Errorf("%w: unknown contributor %q", httpx.ErrValidation, in.Contributor)
	}

	inv := model.Investment{
		ID:          uuid.NewString(),
		Contributor: in.Contributor,
		Amount:      in.Amount,
		CreatedAt:   s.now().UTC(),
	}
	created, err := s.store.InsertInvestment(ctx, inv)
	if err != nil {
		return model.Investment{}, fmt.Errorf("insert investment: %w", err)
	}
	s.logger.Info("investment recorded",
		slog.String("id", created.ID),
		slog.String("contributor", created.Contributor))
	return created, nil
}

// DeleteInvestment removes a contribution row by id.
func (s *Service) DeleteInvestment(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: investment id is required", httpx.ErrValidation)
	}
	if err := s.store.DeleteInvestment(ctx, id); err != nil {
		return fmt.Errorf("delete investment %s: %w", id, err)
	}
	s.logger.Info("investment deleted", slog.String("id", id))
	return nil
}

func validCategory(category string) bool {
	for _, c := range model.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func firstFieldError(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag())
	}
	return err.Error()
}

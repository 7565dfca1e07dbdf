package stocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultListLimit caps catalog listings when no limit is requested.
const DefaultListLimit = 100

// Service exposes catalog operations. Reads are public; writes are gated to
// admin-tier users at the route layer.
type Service struct {
	repo Repository
}

// NewService builds a stock catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures the fields of a new listing.
type CreateInput struct {
	Symbol   string
	Name     string
	Exchange string
	Sector   string
	Price    float64
	Change   float64
	Volume   float64
}

// Create lists a new instrument. Symbol is canonicalized to uppercase.
func (s *Service) Create(ctx context.Context, in CreateInput) (Stock, error) {
	symbol := CanonicalSymbol(in.Symbol)
	if symbol == "" || in.Name == "" {
		return Stock{}, fmt.Errorf("%w: symbol and name are required", ErrValidation)
	}
	exchange := in.Exchange
	if exchange == "" {
		exchange = DefaultExchange
	}

	now := time.Now().UTC()
	stock := Stock{
		ID:        uuid.New().String(),
		Symbol:    symbol,
		Name:      in.Name,
		Exchange:  exchange,
		Sector:    in.Sector,
		Price:     in.Price,
		Change:    in.Change,
		Volume:    in.Volume,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, stock); err != nil {
		return Stock{}, err
	}
	return stock, nil
}

// List returns catalog entries matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Stock, error) {
	return s.repo.List(ctx, filter)
}

// GetBySymbol fetches one listing.
func (s *Service) GetBySymbol(ctx context.Context, symbol string) (Stock, error) {
	return s.repo.FindBySymbol(ctx, CanonicalSymbol(symbol))
}

// UpdateInput holds the optional fields of a listing patch. Nil fields
// retain their previous values.
type UpdateInput struct {
	Name     *string
	Exchange *string
	Sector   *string
	Price    *float64
	Change   *float64
	Volume   *float64
}

// Update applies a partial patch to a listing.
func (s *Service) Update(ctx context.Context, symbol string, in UpdateInput) (Stock, error) {
	stock, err := s.repo.FindBySymbol(ctx, CanonicalSymbol(symbol))
	if err != nil {
		return Stock{}, err
	}

	if in.Name != nil {
		stock.Name = *in.Name
	}
	if in.Exchange != nil {
		stock.Exchange = *in.Exchange
	}
	if in.Sector != nil {
		stock.Sector = *in.Sector
	}
	if in.Price != nil {
		stock.Price = *in.Price
	}
	if in.Change != nil {
		stock.Change = *in.Change
	}
	if in.Volume != nil {
		stock.Volume = *in.Volume
	}
	stock.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, stock); err != nil {
		return Stock{}, err
	}
	return stock, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, symbol string) error {
	return s.repo.Delete(ctx, CanonicalSymbol(symbol))
}

// BulkUpdatePrices applies each price row independently. Rows with unknown
// symbols are skipped and counted as unmatched; there is no cross-record
// atomicity, so a mid-batch failure leaves earlier rows applied.
func (s *Service) BulkUpdatePrices(ctx context.Context, updates []PriceUpdate) (BulkResult, error) {
	var result BulkResult
	for _, u := range updates {
		symbol := CanonicalSymbol(u.Symbol)
		if symbol == "" {
			continue
		}
		result.MatchedCount++
		matched, err := s.repo.UpdatePrice(ctx, symbol, u.Price, u.Change, u.Volume)
		if err != nil {
			return result, err
		}
		if matched {
			result.ModifiedCount++
		} else {
			result.MatchedCount--
		}
	}
	return result, nil
}

// CanonicalSymbol uppercases and trims a ticker symbol.
func CanonicalSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

package stocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryRepository struct {
	mu     sync.RWMutex
	stocks map[string]Stock // keyed by symbol
}

// NewMemoryRepository builds an in-memory catalog for development and testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{stocks: make(map[string]Stock)}
}

func (r *memoryRepository) Create(_ context.Context, stock Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.stocks[stock.Symbol]; exists {
		return ErrDuplicateSymbol
	}
	r.stocks[stock.Symbol] = stock
	return nil
}

func (r *memoryRepository) FindBySymbol(_ context.Context, symbol string) (Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stock, ok := r.stocks[symbol]
	if !ok {
		return Stock{}, ErrNotFound
	}
	return stock, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Stock, 0, len(r.stocks))
	for _, stock := range r.stocks {
		if filter.Symbol != "" && !strings.Contains(stock.Symbol, strings.ToUpper(filter.Symbol)) {
			continue
		}
		if filter.Exchange != "" && stock.Exchange != filter.Exchange {
			continue
		}
		if filter.Sector != "" && stock.Sector != filter.Sector {
			continue
		}
		out = append(out, stock)
	}

	sort.Slice(out, func(i, j int) bool {
		switch filter.SortBy {
		case "price":
			return out[i].Price > out[j].Price
		case "volume":
			return out[i].Volume > out[j].Volume
		case "change":
			return out[i].Change > out[j].Change
		default:
			return out[i].Symbol < out[j].Symbol
		}
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, stock Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stocks[stock.Symbol]; !ok {
		return ErrNotFound
	}
	r.stocks[stock.Symbol] = stock
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stocks[symbol]; !ok {
		return ErrNotFound
	}
	delete(r.stocks, symbol)
	return nil
}

func (r *memoryRepository) UpdatePrice(_ context.Context, symbol string, price, change, volume float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stock, ok := r.stocks[symbol]
	if !ok {
		return false, nil
	}
	stock.Price = price
	stock.Change = change
	stock.Volume = volume
	stock.UpdatedAt = time.Now().UTC()
	r.stocks[symbol] = stock
	return true, nil
}

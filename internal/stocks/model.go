package stocks

import (
	"errors"
	"time"
)

// DefaultExchange is assumed when a stock is created without one.
const DefaultExchange = "EGX"

var (
	// ErrNotFound indicates no stock exists for the symbol.
	ErrNotFound = errors.New("stock not found")
	// ErrDuplicateSymbol indicates the symbol is already listed.
	ErrDuplicateSymbol = errors.New("symbol already exists")
	// ErrValidation wraps malformed or missing input.
	ErrValidation = errors.New("validation failed")
)

// Stock is a tradable instrument in the catalog. Symbol is the canonical
// key, always uppercase.
type Stock struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Exchange  string    `json:"exchange"`
	Sector    string    `json:"sector,omitempty"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	Volume    float64   `json:"volume"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter narrows and orders catalog listings.
type Filter struct {
	Symbol   string // substring match, case-insensitive
	Exchange string
	Sector   string
	SortBy   string // price | volume | change, descending
	Limit    int
}

// PriceUpdate is one row of a bulk price refresh.
type PriceUpdate struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
	Volume float64 `json:"volume"`
}

// BulkResult reports how many rows a bulk refresh touched.
type BulkResult struct {
	MatchedCount  int `json:"matchedCount"`
	ModifiedCount int `json:"modifiedCount"`
}

package stocks

import (
	"context"
	"errors"
	"testing"
)

func TestCreateCanonicalizesSymbol(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	stock, err := svc.Create(ctx, CreateInput{Symbol: " comi ", Name: "Commercial Intl Bank", Price: 82.5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if stock.Symbol != "COMI" {
		t.Fatalf("expected COMI, got %s", stock.Symbol)
	}
	if stock.Exchange != DefaultExchange {
		t.Fatalf("expected default exchange, got %s", stock.Exchange)
	}

	if _, err := svc.Create(ctx, CreateInput{Symbol: "comi", Name: "Duplicate"}); !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("expected duplicate symbol, got %v", err)
	}

	fetched, err := svc.GetBySymbol(ctx, "comi")
	if err != nil {
		t.Fatalf("get by lowercase symbol: %v", err)
	}
	if fetched.ID != stock.ID {
		t.Fatalf("expected stock %s, got %s", stock.ID, fetched.ID)
	}
}

func TestUpdatePatchSemantics(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Symbol: "HRHO", Name: "EFG Hermes", Price: 20, Volume: 1000}); err != nil {
		t.Fatalf("create: %v", err)
	}

	price := 21.5
	updated, err := svc.Update(ctx, "hrho", UpdateInput{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 21.5 {
		t.Fatalf("expected price 21.5, got %f", updated.Price)
	}
	if updated.Name != "EFG Hermes" || updated.Volume != 1000 {
		t.Fatalf("omitted fields must be retained: %+v", updated)
	}

	if _, err := svc.Update(ctx, "NOPE", UpdateInput{Price: &price}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListFilterAndSort(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	seed := []CreateInput{
		{Symbol: "COMI", Name: "CIB", Sector: "Banking", Price: 82, Volume: 500},
		{Symbol: "HRHO", Name: "EFG Hermes", Sector: "Financial", Price: 21, Volume: 900},
		{Symbol: "SWDY", Name: "Elsewedy", Sector: "Industrial", Price: 45, Volume: 300},
	}
	for _, in := range seed {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("seed %s: %v", in.Symbol, err)
		}
	}

	banking, err := svc.List(ctx, Filter{Sector: "Banking"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(banking) != 1 || banking[0].Symbol != "COMI" {
		t.Fatalf("expected only COMI, got %+v", banking)
	}

	byPrice, err := svc.List(ctx, Filter{SortBy: "price"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byPrice) != 3 || byPrice[0].Symbol != "COMI" || byPrice[2].Symbol != "HRHO" {
		t.Fatalf("expected descending price order, got %+v", byPrice)
	}

	limited, err := svc.List(ctx, Filter{SortBy: "volume", Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(limited) != 2 || limited[0].Symbol != "HRHO" {
		t.Fatalf("expected top-2 by volume, got %+v", limited)
	}

	match, err := svc.List(ctx, Filter{Symbol: "om"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(match) != 1 || match[0].Symbol != "COMI" {
		t.Fatalf("expected substring match on COMI, got %+v", match)
	}
}

func TestBulkUpdatePricesBestEffort(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Symbol: "COMI", Name: "CIB", Price: 82}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Symbol: "SWDY", Name: "Elsewedy", Price: 45}); err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := svc.BulkUpdatePrices(ctx, []PriceUpdate{
		{Symbol: "comi", Price: 84, Change: 2},
		{Symbol: "GHOST", Price: 1},
		{Symbol: "SWDY", Price: 46, Change: 1, Volume: 700},
	})
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if result.MatchedCount != 2 || result.ModifiedCount != 2 {
		t.Fatalf("expected 2 matched/modified, got %+v", result)
	}

	comi, err := svc.GetBySymbol(ctx, "COMI")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if comi.Price != 84 || comi.Change != 2 {
		t.Fatalf("quote not applied: %+v", comi)
	}
}

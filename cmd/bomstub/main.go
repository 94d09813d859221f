package main

import (
	"flag"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/stubserver"
)

// bomstub runs the in-memory shopping-list API with a small demo fixture,
// as a local target for the bomsquad CLI.
func main() {
	var (
		addr      = flag.String("addr", ":8088", "Address to listen on")
		csrfToken = flag.String("csrf-token", "", "Expected CSRF token, empty disables the check")
	)
	flag.Parse()

	srv := stubserver.New(*csrfToken)
	srv.Seed(demoEntries())
	srv.SeedCurrency(domain.Currency{Code: "USD", ExchangeRate: decimal.NewFromInt(1)})
	srv.Serve(*addr)
}

func demoEntries() []*domain.ShoppingListEntry {
	now := time.Now()

	resistor := &domain.Component{
		ID:             1,
		Description:    "Resistor 10k 1% 0.25W",
		Type:           "Resistor",
		Supplier:       domain.Supplier{ID: 1, Name: "Mouser Electronics", ShortName: "Mouser"},
		SupplierItemNo: "603-RC0805FR-0710KL",
		Price:          decimal.RequireFromString("0.10"),
		Unit:           "pcs",
	}
	capacitor := &domain.Component{
		ID:             2,
		Description:    "Capacitor 100n ceramic",
		Type:           "Capacitor",
		Supplier:       domain.Supplier{ID: 2, Name: "Tayda Electronics", ShortName: "Tayda"},
		SupplierItemNo: "A-553",
		Price:          decimal.RequireFromString("0.04"),
		Unit:           "pcs",
	}

	vco := &domain.Module{ID: 1, Name: "VCO"}
	filter := &domain.Module{ID: 2, Name: "Ladder Filter"}

	return []*domain.ShoppingListEntry{
		{
			ID: 1, UserID: 1, Module: vco,
			BomItem:   &domain.BomItem{ID: 11, ModuleID: vco.ID, Description: "10k resistors", Quantity: 2},
			Component: resistor, Quantity: 2, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 2, UserID: 1, Module: filter,
			BomItem:   &domain.BomItem{ID: 21, ModuleID: filter.ID, Description: "10k resistors", Quantity: 3},
			Component: resistor, Quantity: 3, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 3, UserID: 1, Module: vco,
			BomItem:   &domain.BomItem{ID: 12, ModuleID: vco.ID, Description: "decoupling caps", Quantity: 1},
			Component: capacitor, Quantity: 1, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 4, UserID: 1,
			Component: capacitor, Quantity: 5, CreatedAt: now, UpdatedAt: now,
		},
	}
}

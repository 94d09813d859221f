package restapitest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bomsquad/shoplist/internal/domain"
)

// Shared fixture: two modules, two components, the resistor appearing in
// both modules. Entry ordering is deliberately not sorted by supplier.
var (
	FixtureResistor = &domain.Component{
		ID:             1,
		Description:    "Resistor 10k",
		Type:           "Resistor",
		Supplier:       domain.Supplier{ID: 1, Name: "Mouser Electronics", ShortName: "Mouser"},
		SupplierItemNo: "603-10K",
		Price:          decimal.RequireFromString("0.10"),
	}
	FixtureCapacitor = &domain.Component{
		ID:             2,
		Description:    "Capacitor 100n",
		Type:           "Capacitor",
		Supplier:       domain.Supplier{ID: 2, Name: "Banzai Music", ShortName: "Banzai"},
		SupplierItemNo: "CAP-100N",
		Price:          decimal.RequireFromString("0.04"),
	}

	FixtureModuleA = &domain.Module{ID: 1, Name: "A"}
	FixtureModuleB = &domain.Module{ID: 2, Name: "B"}
)

// SynthEntries builds the canonical scenario: module A wants 2x resistor and
// 1x capacitor, module B wants 3x resistor.
func SynthEntries() []*domain.ShoppingListEntry {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	return []*domain.ShoppingListEntry{
		{
			ID: 1, UserID: 1, Module: FixtureModuleA,
			BomItem:   &domain.BomItem{ID: 11, ModuleID: FixtureModuleA.ID, Quantity: 2},
			Component: FixtureResistor, Quantity: 2, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 2, UserID: 1, Module: FixtureModuleB,
			BomItem:   &domain.BomItem{ID: 21, ModuleID: FixtureModuleB.ID, Quantity: 3},
			Component: FixtureResistor, Quantity: 3, CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 3, UserID: 1, Module: FixtureModuleA,
			BomItem:   &domain.BomItem{ID: 12, ModuleID: FixtureModuleA.ID, Quantity: 1},
			Component: FixtureCapacitor, Quantity: 1, CreatedAt: now, UpdatedAt: now,
		},
	}
}

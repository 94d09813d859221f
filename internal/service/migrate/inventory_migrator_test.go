package migrate

import (
	"context"
	"testing"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/pkg/restapi/restapitest"
	"github.com/bomsquad/shoplist/internal/service/shoppinglist"
	"github.com/bomsquad/shoplist/internal/stubserver/stubservertest"
)

const testCSRF = "test-csrf-token"

func TestMigrateAll_Success(t *testing.T) {
	stub, client, c := stubservertest.Start(t, testCSRF)
	stub.Seed(restapitest.SynthEntries())

	m := NewMigrator(client, c)
	locations := map[domain.ComponentID][]string{
		restapitest.FixtureResistor.ID: {"Shelf 2", "Box R"},
	}

	if err := m.MigrateAll(context.Background(), locations); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(stub.Entries()); got != 0 {
		t.Errorf("shopping list still has %d entries", got)
	}

	inv := stub.InventoryEntry(restapitest.FixtureResistor.ID)
	if inv == nil {
		t.Fatal("resistor missing from inventory")
	}
	if inv.Quantity != 5 {
		t.Errorf("resistor inventory = %d, want 5", inv.Quantity)
	}
	if len(inv.Location) != 2 || inv.Location[0] != "Shelf 2" {
		t.Errorf("location = %v", inv.Location)
	}
}

// Additive semantics: migrating a component the user already holds sums the
// quantities instead of overwriting.
func TestMigrateAll_AddsToExistingInventory(t *testing.T) {
	stub, client, c := stubservertest.Start(t, testCSRF)
	stub.Seed(restapitest.SynthEntries())
	stub.SeedInventory(&domain.InventoryEntry{
		ID: 1, UserID: 1, Component: restapitest.FixtureResistor, Quantity: 10,
	})

	m := NewMigrator(client, c)
	if err := m.MigrateAll(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stub.InventoryEntry(restapitest.FixtureResistor.ID).Quantity; got != 15 {
		t.Errorf("resistor inventory = %d, want 15", got)
	}
}

// All-or-nothing from the client's perspective: a failed migrate-all leaves
// the shopping-list cache un-invalidated, so a subsequent read still returns
// the pre-migration entries.
func TestMigrateAll_FailureLeavesCachesUntouched(t *testing.T) {
	stub, client, c := stubservertest.Start(t, testCSRF)
	stub.Seed(restapitest.SynthEntries())

	// Warm the shopping-list cache.
	lister := shoppinglist.NewService(client, c)
	before, err := lister.Entries(context.Background())
	if err != nil {
		t.Fatalf("warming fetch: %v", err)
	}

	stub.FailNext("migrate-all", 1)

	m := NewMigrator(client, c)
	if err = m.MigrateAll(context.Background(), nil); err == nil {
		t.Fatal("expected the injected failure")
	}

	after, err := lister.Entries(context.Background())
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("cached read changed after failed migration: %d != %d", len(after), len(before))
	}
	if stub.InventoryEntry(restapitest.FixtureResistor.ID) != nil {
		t.Error("inventory mutated despite the failure")
	}
}

func TestMigrateOne_RemovesOnlyThatEntry(t *testing.T) {
	stub, client, c := stubservertest.Start(t, testCSRF)
	stub.Seed(restapitest.SynthEntries())

	entries := stub.Entries()
	var target *domain.ShoppingListEntry
	for _, e := range entries {
		if e.Component.ID == restapitest.FixtureCapacitor.ID {
			target = e
		}
	}

	m := NewMigrator(client, c)
	if err := m.MigrateOne(context.Background(), target, []string{"Drawer 1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(stub.Entries()); got != 2 {
		t.Errorf("%d entries left, want the 2 resistor ones", got)
	}
	inv := stub.InventoryEntry(restapitest.FixtureCapacitor.ID)
	if inv == nil || inv.Quantity != 1 {
		t.Errorf("capacitor inventory = %+v", inv)
	}
}

// An entry the list legitimately holds at zero quantity still migrates; it
// just contributes nothing to the inventory count.
func TestMigrateOne_ZeroQuantityEntry(t *testing.T) {
	stub, client, c := stubservertest.Start(t, testCSRF)
	entry := &domain.ShoppingListEntry{
		ID: 1, UserID: 1, Component: restapitest.FixtureResistor, Quantity: 0,
	}
	stub.Seed([]*domain.ShoppingListEntry{entry})

	m := NewMigrator(client, c)
	if err := m.MigrateOne(context.Background(), entry, []string{"Shelf 2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(stub.Entries()); got != 0 {
		t.Errorf("%d entries left, want 0", got)
	}
	inv := stub.InventoryEntry(restapitest.FixtureResistor.ID)
	if inv == nil || inv.Quantity != 0 {
		t.Errorf("resistor inventory = %+v", inv)
	}
}

func TestMigrateOne_NoComponent(t *testing.T) {
	_, client, c := stubservertest.Start(t, testCSRF)

	m := NewMigrator(client, c)
	if err := m.MigrateOne(context.Background(), &domain.ShoppingListEntry{ID: 1}, nil); err == nil {
		t.Error("expected a validation error for an entry without a component")
	}
}

func TestMigrateOne_FailureKeepsEntry(t *testing.T) {
	stub, client, c := stubservertest.Start(t, testCSRF)
	stub.Seed(restapitest.SynthEntries())
	stub.FailNext("migrate-one", 1)

	m := NewMigrator(client, c)
	entry := stub.Entries()[0]
	if err := m.MigrateOne(context.Background(), entry, nil); err == nil {
		t.Fatal("expected the injected failure")
	}

	if got := len(stub.Entries()); got != 3 {
		t.Errorf("%d entries left, want 3", got)
	}
}

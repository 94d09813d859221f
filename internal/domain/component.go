package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	ComponentID int64
	ModuleID    int64
	BomItemID   int64
	EntryID     int64
	UserID      int64
)

// Attributes holds electrical properties (ohms, farads, tolerance and so on).
// They are opaque to this subsystem and carried through for display only.
type Attributes = map[string]string

type Supplier struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	URL       string `json:"url,omitempty"`
}

// Component is a distinct catalog part. Owned by the catalog service and
// immutable here.
type Component struct {
	ID             ComponentID     `json:"id"`
	Description    string          `json:"description"`
	Type           string          `json:"type"`
	Manufacturer   string          `json:"manufacturer,omitempty"`
	Supplier       Supplier        `json:"supplier"`
	SupplierItemNo string          `json:"supplier_item_no"`
	Price          decimal.Decimal `json:"unit_price"`
	Unit           string          `json:"unit,omitempty"`
	Attributes     Attributes      `json:"attributes,omitempty"`
}

type Module struct {
	ID   ModuleID `json:"id"`
	Name string   `json:"name"`
}

// BomItem is a single line in a module's bill of materials. Read-only input:
// the acceptable component options are chosen from elsewhere, entries here
// only reference the line.
type BomItem struct {
	ID               BomItemID     `json:"id"`
	ModuleID         ModuleID      `json:"module_id"`
	Description      string        `json:"description"`
	Quantity         int64         `json:"quantity"`
	ComponentOptions []ComponentID `json:"component_options,omitempty"`
}

// ShoppingListEntry is one user-owned pending-purchase record. Module and
// BomItem are nil for entries not tied to a project.
type ShoppingListEntry struct {
	ID        EntryID    `json:"id"`
	UserID    UserID     `json:"user_id"`
	Module    *Module    `json:"module,omitempty"`
	BomItem   *BomItem   `json:"bom_item,omitempty"`
	Component *Component `json:"component"`
	Quantity  int64      `json:"quantity"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// InventoryEntry is a user's on-hand stock of one component. Location is an
// ordered list of free-text labels, outermost first.
type InventoryEntry struct {
	ID        EntryID    `json:"id"`
	UserID    UserID     `json:"user_id"`
	Component *Component `json:"component"`
	Quantity  int64      `json:"quantity"`
	Location  []string   `json:"location,omitempty"`
}

// Currency is the user's display currency with the rate applied to catalog
// prices for the price columns.
type Currency struct {
	Code         string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

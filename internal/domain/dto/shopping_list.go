package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bomsquad/shoplist/internal/domain"
)

// UpdateQuantityRequest is the PATCH body for
// /shopping-list/{componentId}/update/.
type UpdateQuantityRequest struct {
	ModulePK  domain.ModuleID  `json:"module_pk" validate:"required"`
	BomItemPK domain.BomItemID `json:"modulebomlistitem_pk" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"gte=0"`
}

// MigrateAllRequest is the POST body for /shopping-list/inventory/add/: a
// bare JSON object keyed by stringified component id, mapping to the
// optional storage location labels to attach on the inventory side.
type MigrateAllRequest map[string][]string

// MigrateOneRequest is the POST body for /shopping-list/{componentId}/add/.
type MigrateOneRequest struct {
	Quantity int64    `json:"quantity" validate:"gte=0"`
	Location []string `json:"location,omitempty"`
}

// TotalPriceResponse mirrors the total-price endpoints. Min and max differ
// when a BOM line has component options at different prices.
type TotalPriceResponse struct {
	TotalMinPrice decimal.Decimal `json:"total_min_price"`
	TotalMaxPrice decimal.Decimal `json:"total_max_price"`
}

// ComponentQuantityResponse mirrors the component-quantity endpoints.
type ComponentQuantityResponse struct {
	Quantity int64 `json:"quantity"`
}

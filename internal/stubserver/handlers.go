package stubserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/domain/dto"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
)

// Seed replaces the shopping-list fixture.
func (s *Server) Seed(entries []*domain.ShoppingListEntry) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.entries = entries
}

// SeedCurrency sets the display currency returned by /currency/.
func (s *Server) SeedCurrency(currency domain.Currency) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.currency = currency
}

// SeedInventory pre-populates one inventory record.
func (s *Server) SeedInventory(entry *domain.InventoryEntry) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.inventory[entry.Component.ID] = entry
}

// Entries returns a copy of the current shopping-list fixture.
func (s *Server) Entries() []*domain.ShoppingListEntry {
	s.mx.Lock()
	defer s.mx.Unlock()
	out := make([]*domain.ShoppingListEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// InventoryEntry returns the inventory record for a component, or nil.
func (s *Server) InventoryEntry(id domain.ComponentID) *domain.InventoryEntry {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.inventory[id]
}

func paramID(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, constants.ErrValidation
	}
	return id, nil
}

func (s *Server) getShoppingList(ctx echo.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if s.failing("get-shopping-list") {
		return constants.NewCodedError(http.StatusInternalServerError, "injected failure")
	}
	return ctx.JSON(http.StatusOK, s.entries)
}

func (s *Server) updateQuantity(ctx echo.Context) error {
	componentID, err := paramID(ctx, "component_pk")
	if err != nil {
		return err
	}

	var req dto.UpdateQuantityRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	if s.failing("update-quantity") {
		return constants.NewCodedError(http.StatusInternalServerError, "injected failure")
	}

	for _, e := range s.entries {
		if e.Component == nil || e.Component.ID != domain.ComponentID(componentID) {
			continue
		}
		if e.Module == nil || e.Module.ID != req.ModulePK {
			continue
		}
		if e.BomItem == nil || e.BomItem.ID != req.BomItemPK {
			continue
		}
		e.Quantity = req.Quantity
		return ctx.NoContent(http.StatusOK)
	}

	return constants.ErrNotFound
}

func (s *Server) deleteModuleEntries(ctx echo.Context) error {
	moduleID, err := paramID(ctx, "module_pk")
	if err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Module == nil || e.Module.ID != domain.ModuleID(moduleID) {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return ctx.NoContent(http.StatusOK)
}

func (s *Server) deleteAnonymousEntries(ctx echo.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Module != nil {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return ctx.NoContent(http.StatusOK)
}

// migrateAll moves every entry into the inventory. Additive: quantities for
// components already held are summed.
func (s *Server) migrateAll(ctx echo.Context) error {
	var req dto.MigrateAllRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	if s.failing("migrate-all") {
		return constants.NewCodedError(http.StatusInternalServerError, "injected failure")
	}

	for _, e := range s.entries {
		if e.Component == nil {
			continue
		}
		location := req[strconv.FormatInt(int64(e.Component.ID), 10)]
		s.addToInventory(e.Component, e.Quantity, location)
	}
	s.entries = nil
	return ctx.NoContent(http.StatusOK)
}

func (s *Server) migrateOne(ctx echo.Context) error {
	componentID, err := paramID(ctx, "component_pk")
	if err != nil {
		return err
	}

	var req dto.MigrateOneRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	if s.failing("migrate-one") {
		return constants.NewCodedError(http.StatusInternalServerError, "injected failure")
	}

	var component *domain.Component
	kept := s.entries[:0]
	for _, e := range s.entries {
		if component == nil && e.Component != nil && e.Component.ID == domain.ComponentID(componentID) {
			component = e.Component
			continue
		}
		kept = append(kept, e)
	}
	if component == nil {
		return constants.ErrNotFound
	}

	s.entries = kept
	s.addToInventory(component, req.Quantity, req.Location)
	return ctx.NoContent(http.StatusOK)
}

func (s *Server) addToInventory(component *domain.Component, quantity int64, location []string) {
	inv, ok := s.inventory[component.ID]
	if !ok {
		inv = &domain.InventoryEntry{
			ID:        domain.EntryID(len(s.inventory) + 1),
			Component: component,
		}
		s.inventory[component.ID] = inv
	}
	inv.Quantity += quantity
	if len(location) > 0 {
		inv.Location = location
	}
}

func (s *Server) totalPrice(ctx echo.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	total := decimal.Zero
	for _, e := range s.entries {
		if e.Component == nil {
			continue
		}
		total = total.Add(e.Component.Price.Mul(decimal.NewFromInt(e.Quantity)))
	}
	return ctx.JSON(http.StatusOK, dto.TotalPriceResponse{TotalMinPrice: total, TotalMaxPrice: total})
}

func (s *Server) componentTotalPrice(ctx echo.Context) error {
	componentID, err := paramID(ctx, "component_pk")
	if err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	total := decimal.Zero
	for _, e := range s.entries {
		if e.Component == nil || e.Component.ID != domain.ComponentID(componentID) {
			continue
		}
		total = total.Add(e.Component.Price.Mul(decimal.NewFromInt(e.Quantity)))
	}
	return ctx.JSON(http.StatusOK, dto.TotalPriceResponse{TotalMinPrice: total, TotalMaxPrice: total})
}

func (s *Server) componentQuantity(ctx echo.Context) error {
	componentID, err := paramID(ctx, "component_pk")
	if err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	var total int64
	for _, e := range s.entries {
		if e.Component != nil && e.Component.ID == domain.ComponentID(componentID) {
			total += e.Quantity
		}
	}
	return ctx.JSON(http.StatusOK, dto.ComponentQuantityResponse{Quantity: total})
}

func (s *Server) componentQuantityAnonymous(ctx echo.Context) error {
	componentID, err := paramID(ctx, "component_pk")
	if err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	var total int64
	for _, e := range s.entries {
		if e.Module == nil && e.Component != nil && e.Component.ID == domain.ComponentID(componentID) {
			total += e.Quantity
		}
	}
	return ctx.JSON(http.StatusOK, dto.ComponentQuantityResponse{Quantity: total})
}

func (s *Server) componentQuantityScoped(ctx echo.Context) error {
	componentID, err := paramID(ctx, "component_pk")
	if err != nil {
		return err
	}
	bomItemID, err := paramID(ctx, "bom_item_pk")
	if err != nil {
		return err
	}
	moduleID, err := paramID(ctx, "module_pk")
	if err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	var total int64
	for _, e := range s.entries {
		if e.Component == nil || e.Component.ID != domain.ComponentID(componentID) {
			continue
		}
		if e.BomItem == nil || e.BomItem.ID != domain.BomItemID(bomItemID) {
			continue
		}
		if e.Module == nil || e.Module.ID != domain.ModuleID(moduleID) {
			continue
		}
		total += e.Quantity
	}
	return ctx.JSON(http.StatusOK, dto.ComponentQuantityResponse{Quantity: total})
}

func (s *Server) inventoryQuantity(ctx echo.Context) error {
	componentID, err := paramID(ctx, "component_pk")
	if err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	var total int64
	if inv, ok := s.inventory[domain.ComponentID(componentID)]; ok {
		total = inv.Quantity
	}
	return ctx.JSON(http.StatusOK, dto.ComponentQuantityResponse{Quantity: total})
}

func (s *Server) getCurrency(ctx echo.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	return ctx.JSON(http.StatusOK, s.currency)
}

package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/domain/dto"
)

func (c *client) GetShoppingList(ctx context.Context) ([]*domain.ShoppingListEntry, error) {
	var entries []*domain.ShoppingListEntry
	if err := c.get(ctx, "/shopping-list/", &entries); err != nil {
		return nil, fmt.Errorf("get shopping list: %w", err)
	}
	return entries, nil
}

func (c *client) UpdateQuantity(ctx context.Context, componentID domain.ComponentID, req *dto.UpdateQuantityRequest) error {
	path := fmt.Sprintf("/shopping-list/%d/update/", componentID)
	if err := c.mutate(ctx, http.MethodPatch, path, req, nil); err != nil {
		return fmt.Errorf("update quantity, component-%d: %w", componentID, err)
	}
	return nil
}

func (c *client) DeleteModuleEntries(ctx context.Context, moduleID domain.ModuleID) error {
	path := fmt.Sprintf("/shopping-list/%d/delete/", moduleID)
	if err := c.mutate(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete module entries, module-%d: %w", moduleID, err)
	}
	return nil
}

func (c *client) DeleteAnonymousEntries(ctx context.Context) error {
	if err := c.mutate(ctx, http.MethodDelete, "/shopping-list/delete-anonymous/", nil, nil); err != nil {
		return fmt.Errorf("delete anonymous entries: %w", err)
	}
	return nil
}

func (c *client) AddAllToInventory(ctx context.Context, req dto.MigrateAllRequest) error {
	if err := c.mutate(ctx, http.MethodPost, "/shopping-list/inventory/add/", req, nil); err != nil {
		return fmt.Errorf("add all to inventory: %w", err)
	}
	return nil
}

func (c *client) AddOneToInventory(ctx context.Context, componentID domain.ComponentID, req *dto.MigrateOneRequest) error {
	path := fmt.Sprintf("/shopping-list/%d/add/", componentID)
	if err := c.mutate(ctx, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("add to inventory, component-%d: %w", componentID, err)
	}
	return nil
}

func (c *client) ComponentTotalPrice(ctx context.Context, componentID domain.ComponentID) (*dto.TotalPriceResponse, error) {
	path := fmt.Sprintf("/shopping-list/%d/total-price/", componentID)

	var resp dto.TotalPriceResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("component total price, component-%d: %w", componentID, err)
	}
	return &resp, nil
}

func (c *client) TotalPrice(ctx context.Context) (*dto.TotalPriceResponse, error) {
	var resp dto.TotalPriceResponse
	if err := c.get(ctx, "/shopping-list/total-price/", &resp); err != nil {
		return nil, fmt.Errorf("total price: %w", err)
	}
	return &resp, nil
}

func (c *client) ComponentQuantity(ctx context.Context, opts ComponentQuantityOpts) (int64, error) {
	var path string
	switch {
	case opts.List == ListInventory:
		path = fmt.Sprintf("/inventory/%d/component-quantity/", opts.ComponentID)
	case opts.List == ListAnonymousShoppingList:
		path = fmt.Sprintf("/shopping-list/%d/component-quantity/anonymous/", opts.ComponentID)
	case opts.BomItemPK != nil && opts.ModulePK != nil:
		path = fmt.Sprintf("/shopping-list/%d/component-quantity/%d/%d/",
			opts.ComponentID, *opts.BomItemPK, *opts.ModulePK)
	default:
		path = fmt.Sprintf("/shopping-list/%d/component-quantity/", opts.ComponentID)
	}

	var resp dto.ComponentQuantityResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return 0, fmt.Errorf("component quantity, component-%d: %w", opts.ComponentID, err)
	}
	return resp.Quantity, nil
}

func (c *client) GetCurrency(ctx context.Context) (*domain.Currency, error) {
	var currency domain.Currency
	if err := c.get(ctx, "/currency/", &currency); err != nil {
		return nil, fmt.Errorf("get currency: %w", err)
	}
	return &currency, nil
}

package restapitest

import (
	"context"
	"sync"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/domain/dto"
	"github.com/bomsquad/shoplist/internal/pkg/restapi"
)

// Fake is a restapi.Client with pluggable behavior per method and call
// counting, for unit tests that don't need the full stub server.
type Fake struct {
	mx    sync.Mutex
	calls map[string]int

	GetShoppingListFn     func(ctx context.Context) ([]*domain.ShoppingListEntry, error)
	UpdateQuantityFn      func(ctx context.Context, componentID domain.ComponentID, req *dto.UpdateQuantityRequest) error
	ComponentQuantityFn   func(ctx context.Context, opts restapi.ComponentQuantityOpts) (int64, error)
	AddAllToInventoryFn   func(ctx context.Context, req dto.MigrateAllRequest) error
	AddOneToInventoryFn   func(ctx context.Context, componentID domain.ComponentID, req *dto.MigrateOneRequest) error
	TotalPriceFn          func(ctx context.Context) (*dto.TotalPriceResponse, error)
	ComponentTotalPriceFn func(ctx context.Context, componentID domain.ComponentID) (*dto.TotalPriceResponse, error)
	GetCurrencyFn         func(ctx context.Context) (*domain.Currency, error)
	DeleteModuleFn        func(ctx context.Context, moduleID domain.ModuleID) error
	DeleteAnonymousFn     func(ctx context.Context) error
}

var _ restapi.Client = (*Fake)(nil)

func New() *Fake {
	return &Fake{calls: make(map[string]int)}
}

func (f *Fake) record(method string) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.calls[method]++
}

// Calls reports how many times the named method ran.
func (f *Fake) Calls(method string) int {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.calls[method]
}

func (f *Fake) GetShoppingList(ctx context.Context) ([]*domain.ShoppingListEntry, error) {
	f.record("GetShoppingList")
	if f.GetShoppingListFn == nil {
		return nil, nil
	}
	return f.GetShoppingListFn(ctx)
}

func (f *Fake) UpdateQuantity(ctx context.Context, componentID domain.ComponentID, req *dto.UpdateQuantityRequest) error {
	f.record("UpdateQuantity")
	if f.UpdateQuantityFn == nil {
		return nil
	}
	return f.UpdateQuantityFn(ctx, componentID, req)
}

func (f *Fake) DeleteModuleEntries(ctx context.Context, moduleID domain.ModuleID) error {
	f.record("DeleteModuleEntries")
	if f.DeleteModuleFn == nil {
		return nil
	}
	return f.DeleteModuleFn(ctx, moduleID)
}

func (f *Fake) DeleteAnonymousEntries(ctx context.Context) error {
	f.record("DeleteAnonymousEntries")
	if f.DeleteAnonymousFn == nil {
		return nil
	}
	return f.DeleteAnonymousFn(ctx)
}

func (f *Fake) AddAllToInventory(ctx context.Context, req dto.MigrateAllRequest) error {
	f.record("AddAllToInventory")
	if f.AddAllToInventoryFn == nil {
		return nil
	}
	return f.AddAllToInventoryFn(ctx, req)
}

func (f *Fake) AddOneToInventory(ctx context.Context, componentID domain.ComponentID, req *dto.MigrateOneRequest) error {
	f.record("AddOneToInventory")
	if f.AddOneToInventoryFn == nil {
		return nil
	}
	return f.AddOneToInventoryFn(ctx, componentID, req)
}

func (f *Fake) ComponentTotalPrice(ctx context.Context, componentID domain.ComponentID) (*dto.TotalPriceResponse, error) {
	f.record("ComponentTotalPrice")
	if f.ComponentTotalPriceFn == nil {
		return &dto.TotalPriceResponse{}, nil
	}
	return f.ComponentTotalPriceFn(ctx, componentID)
}

func (f *Fake) TotalPrice(ctx context.Context) (*dto.TotalPriceResponse, error) {
	f.record("TotalPrice")
	if f.TotalPriceFn == nil {
		return &dto.TotalPriceResponse{}, nil
	}
	return f.TotalPriceFn(ctx)
}

func (f *Fake) ComponentQuantity(ctx context.Context, opts restapi.ComponentQuantityOpts) (int64, error) {
	f.record("ComponentQuantity")
	if f.ComponentQuantityFn == nil {
		return 0, nil
	}
	return f.ComponentQuantityFn(ctx, opts)
}

func (f *Fake) GetCurrency(ctx context.Context) (*domain.Currency, error) {
	f.record("GetCurrency")
	if f.GetCurrencyFn == nil {
		return &domain.Currency{Code: "USD"}, nil
	}
	return f.GetCurrencyFn(ctx)
}

package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/domain/dto"
	"github.com/bomsquad/shoplist/internal/pkg/cache"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
	"github.com/bomsquad/shoplist/internal/pkg/restapi"
)

// Service converts catalog prices into the user's display currency and
// exposes the server-reported min/max totals for the footer. Quantities
// always come from the client-side aggregate; the server totals are never
// used to recompute them.
type Service struct {
	client restapi.Client
	cache  *cache.Cache
}

func NewService(client restapi.Client, c *cache.Cache) *Service {
	return &Service{client: client, cache: c}
}

func (s *Service) DisplayCurrency(ctx context.Context) (*domain.Currency, error) {
	v, err := s.cache.Get(ctx, cache.NewKey(constants.ResourceCurrency), func(ctx context.Context) (interface{}, error) {
		currency, err := s.client.GetCurrency(ctx)
		if err != nil {
			return nil, fmt.Errorf("client.GetCurrency: %w", err)
		}
		return currency, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Currency), nil
}

// RowTotal is one component's price column value: unit price times the
// cross-module quantity, converted and rounded to 2 decimals for display.
func RowTotal(currency *domain.Currency, component *domain.Component, totalQuantity int64) decimal.Decimal {
	total := component.Price.Mul(decimal.NewFromInt(totalQuantity))
	return Convert(currency, total)
}

// Convert applies the display-currency exchange rate to a catalog price.
func Convert(currency *domain.Currency, price decimal.Decimal) decimal.Decimal {
	if currency == nil || currency.ExchangeRate.IsZero() {
		return price.Round(2)
	}
	return price.Mul(currency.ExchangeRate).Round(2)
}

// GrandTotal returns the server-reported min/max totals for the whole list.
func (s *Service) GrandTotal(ctx context.Context) (*dto.TotalPriceResponse, error) {
	v, err := s.cache.Get(ctx, cache.NewKey(constants.ResourceTotalPrice), func(ctx context.Context) (interface{}, error) {
		resp, err := s.client.TotalPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("client.TotalPrice: %w", err)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*dto.TotalPriceResponse), nil
}

// ComponentTotal returns the server-reported min/max totals for one
// component's line across the list.
func (s *Service) ComponentTotal(ctx context.Context, componentID domain.ComponentID) (*dto.TotalPriceResponse, error) {
	key := cache.NewKey(constants.ResourceTotalPrice, componentID)
	v, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		resp, err := s.client.ComponentTotalPrice(ctx, componentID)
		if err != nil {
			return nil, fmt.Errorf("client.ComponentTotalPrice, component-%d: %w", componentID, err)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*dto.TotalPriceResponse), nil
}

package shoppinglist

import (
	"context"
	"fmt"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/pkg/cache"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
	"github.com/bomsquad/shoplist/internal/pkg/restapi"
	"github.com/bomsquad/shoplist/internal/service/aggregate"
)

// Service owns the shopping-list snapshot: one cached fetch of the flat
// entry list that every on-screen consumer reads, re-aggregated on demand.
type Service struct {
	client restapi.Client
	cache  *cache.Cache
}

func NewService(client restapi.Client, c *cache.Cache) *Service {
	return &Service{client: client, cache: c}
}

// Entries returns the cached flat shopping list, fetching on a miss.
func (s *Service) Entries(ctx context.Context) ([]*domain.ShoppingListEntry, error) {
	v, err := s.cache.Get(ctx, cache.NewKey(constants.ResourceShoppingList), func(ctx context.Context) (interface{}, error) {
		entries, err := s.client.GetShoppingList(ctx)
		if err != nil {
			return nil, fmt.Errorf("client.GetShoppingList: %w", err)
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*domain.ShoppingListEntry), nil
}

// Snapshot fetches the entries and regroups them. Aggregation is pure and
// cheap, so only the fetch is cached.
func (s *Service) Snapshot(ctx context.Context) (*aggregate.Result, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}

	return aggregate.Aggregate(entries), nil
}

// DeleteModule removes every entry belonging to one module. Destructive:
// callers confirm with the user before calling.
func (s *Service) DeleteModule(ctx context.Context, moduleID domain.ModuleID) error {
	if err := s.client.DeleteModuleEntries(ctx, moduleID); err != nil {
		return fmt.Errorf("client.DeleteModuleEntries, module-%d: %w", moduleID, err)
	}

	s.cache.InvalidateFor(cache.MutationDeleteModule)
	return nil
}

// DeleteAnonymous removes every entry not tied to a module.
func (s *Service) DeleteAnonymous(ctx context.Context) error {
	if err := s.client.DeleteAnonymousEntries(ctx); err != nil {
		return fmt.Errorf("client.DeleteAnonymousEntries: %w", err)
	}

	s.cache.InvalidateFor(cache.MutationDeleteAnonymous)
	return nil
}

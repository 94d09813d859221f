package migrate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/domain/dto"
	"github.com/bomsquad/shoplist/internal/pkg/cache"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
	"github.com/bomsquad/shoplist/internal/pkg/restapi"
)

// Migrator moves shopping-list entries into the inventory. Server semantics
// are additive: quantities for already-held components are summed, never
// overwritten. The client never mutates local state ahead of the server; a
// failed call leaves every cache exactly as it was, so a re-read still
// returns the pre-migration entries.
type Migrator struct {
	client   restapi.Client
	cache    *cache.Cache
	validate *validator.Validate
}

func NewMigrator(client restapi.Client, c *cache.Cache) *Migrator {
	return &Migrator{client: client, cache: c, validate: validator.New()}
}

// MigrateAll moves every current entry, attaching the optional per-component
// storage locations. On confirmed success the whole shopping list is cleared
// client-side via invalidation.
func (m *Migrator) MigrateAll(ctx context.Context, locationsByComponent map[domain.ComponentID][]string) error {
	req := make(dto.MigrateAllRequest, len(locationsByComponent))
	for id, location := range locationsByComponent {
		req[strconv.FormatInt(int64(id), 10)] = location
	}

	if err := m.client.AddAllToInventory(ctx, req); err != nil {
		return fmt.Errorf("client.AddAllToInventory: %w", err)
	}

	m.cache.InvalidateFor(cache.MutationMigrateAll)
	return nil
}

// MigrateOne moves a single entry, removing only that entry from the
// shopping list on success.
func (m *Migrator) MigrateOne(ctx context.Context, entry *domain.ShoppingListEntry, location []string) error {
	if entry == nil || entry.Component == nil {
		return fmt.Errorf("entry has no component: %w", constants.ErrValidation)
	}

	req := &dto.MigrateOneRequest{
		Quantity: entry.Quantity,
		Location: location,
	}
	if err := m.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), constants.ErrValidation)
	}

	if err := m.client.AddOneToInventory(ctx, entry.Component.ID, req); err != nil {
		return fmt.Errorf("client.AddOneToInventory, component-%d: %w", entry.Component.ID, err)
	}

	m.cache.InvalidateFor(cache.MutationMigrateOne)
	return nil
}

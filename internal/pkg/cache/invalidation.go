package cache

import "github.com/bomsquad/shoplist/internal/pkg/constants"

// Mutation names a write operation against the API.
type Mutation string

const (
	MutationUpdateQuantity  Mutation = "update-quantity"
	MutationMigrateAll      Mutation = "migrate-all"
	MutationMigrateOne      Mutation = "migrate-one"
	MutationDeleteModule    Mutation = "delete-module"
	MutationDeleteAnonymous Mutation = "delete-anonymous"
)

// invalidationTable declares, per mutation, which cached resources it makes
// stale. Every mutation the module issues must have a row here; a stale sum
// is a correctness bug, not a cosmetic one.
var invalidationTable = map[Mutation][]string{
	MutationUpdateQuantity: {
		constants.ResourceShoppingList,
		constants.ResourceTotalPrice,
		constants.ResourceComponentQuantity,
	},
	MutationMigrateAll: {
		constants.ResourceShoppingList,
		constants.ResourceInventory,
		constants.ResourceTotalPrice,
		constants.ResourceComponentQuantity,
	},
	MutationMigrateOne: {
		constants.ResourceShoppingList,
		constants.ResourceInventory,
		constants.ResourceTotalPrice,
		constants.ResourceComponentQuantity,
	},
	MutationDeleteModule: {
		constants.ResourceShoppingList,
		constants.ResourceTotalPrice,
		constants.ResourceComponentQuantity,
	},
	MutationDeleteAnonymous: {
		constants.ResourceShoppingList,
		constants.ResourceTotalPrice,
		constants.ResourceComponentQuantity,
	},
}

// InvalidateFor applies the invalidation table row for m.
func (c *Cache) InvalidateFor(m Mutation) {
	c.Invalidate(invalidationTable[m]...)
}

// ResourcesFor reports the table row for m, used by tests to pin the table.
func ResourcesFor(m Mutation) []string {
	row := invalidationTable[m]
	out := make([]string, len(row))
	copy(out, row)
	return out
}

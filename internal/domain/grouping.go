package domain

// UnassignedModuleName labels the sentinel group holding entries whose
// module reference is nil. The group always sorts after every named module.
const UnassignedModuleName = "Other"

// GroupedByModule is derived, never persisted: one module's slice of the
// shopping list, keyed by component. Recomputed from scratch on every
// refresh of the underlying entries.
type GroupedByModule struct {
	ModuleID ModuleID
	Name     string
	// Data maps component id to that component's entries for this module.
	// Normally a singleton per user, but more than one record is legal;
	// the sum across the list is the effective quantity for the pair.
	Data map[ComponentID][]*ShoppingListEntry
}

// Quantity returns the effective quantity of one component in this module.
func (g *GroupedByModule) Quantity(id ComponentID) int64 {
	var total int64
	for _, e := range g.Data[id] {
		total += e.Quantity
	}
	return total
}

// AggregatedComponent is one row per distinct component across all modules,
// with the cross-module quantity sum. Display fields come from the first
// entry seen for the component.
type AggregatedComponent struct {
	Component     *Component
	TotalQuantity int64
}

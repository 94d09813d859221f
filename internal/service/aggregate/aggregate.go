package aggregate

import (
	"fmt"
	"sort"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
)

// Result is the derived view of one shopping-list snapshot: per-module
// sub-lists plus one de-duplicated row per distinct component.
type Result struct {
	GroupedByModule      []*domain.GroupedByModule
	AggregatedComponents []*domain.AggregatedComponent
}

// Aggregate regroups a flat shopping list. Pure and deterministic: the same
// entry slice always produces the same grouping in the same order, so
// callers recompute on every refresh instead of patching previous output.
// Entries without a component reference are skipped.
func Aggregate(entries []*domain.ShoppingListEntry) *Result {
	groups := make(map[string]*domain.GroupedByModule)
	order := make([]string, 0, 8)

	rows := make(map[domain.ComponentID]*domain.AggregatedComponent)
	rowOrder := make([]domain.ComponentID, 0, len(entries))

	for _, e := range entries {
		if e == nil || e.Component == nil {
			continue
		}

		name := domain.UnassignedModuleName
		var moduleID domain.ModuleID
		if e.Module != nil {
			name = e.Module.Name
			moduleID = e.Module.ID
		}

		g, ok := groups[name]
		if !ok {
			g = &domain.GroupedByModule{
				ModuleID: moduleID,
				Name:     name,
				Data:     make(map[domain.ComponentID][]*domain.ShoppingListEntry),
			}
			groups[name] = g
			order = append(order, name)
		}
		g.Data[e.Component.ID] = append(g.Data[e.Component.ID], e)

		row, ok := rows[e.Component.ID]
		if !ok {
			// First occurrence wins for display fields.
			row = &domain.AggregatedComponent{Component: e.Component}
			rows[e.Component.ID] = row
			rowOrder = append(rowOrder, e.Component.ID)
		}
		row.TotalQuantity += e.Quantity
	}

	grouped := make([]*domain.GroupedByModule, 0, len(groups))
	for _, name := range order {
		grouped = append(grouped, groups[name])
	}
	sort.SliceStable(grouped, func(i, j int) bool {
		// The unassigned group always sorts last.
		if grouped[i].Name == domain.UnassignedModuleName {
			return false
		}
		if grouped[j].Name == domain.UnassignedModuleName {
			return true
		}
		return grouped[i].Name < grouped[j].Name
	})

	aggregated := make([]*domain.AggregatedComponent, 0, len(rows))
	for _, id := range rowOrder {
		aggregated = append(aggregated, rows[id])
	}
	sort.SliceStable(aggregated, func(i, j int) bool {
		si := aggregated[i].Component.Supplier.ShortName
		sj := aggregated[j].Component.Supplier.ShortName
		if si != sj {
			return si < sj
		}
		return aggregated[i].Component.ID < aggregated[j].Component.ID
	})

	return &Result{
		GroupedByModule:      grouped,
		AggregatedComponents: aggregated,
	}
}

// BomItemRef resolves the BOM line an edit of (component, module) originated
// from. A missing mapping is a data-consistency bug on the caller's side, so
// it comes back as a coded error instead of a zero id.
func (r *Result) BomItemRef(componentID domain.ComponentID, moduleID domain.ModuleID) (domain.BomItemID, error) {
	for _, g := range r.GroupedByModule {
		if g.ModuleID != moduleID {
			continue
		}
		for _, e := range g.Data[componentID] {
			if e.BomItem != nil {
				return e.BomItem.ID, nil
			}
		}
	}

	return 0, fmt.Errorf("component-%d, module-%d: %w", componentID, moduleID, constants.ErrMissingBomItemRef)
}

// Group returns the module group with the given name, or nil.
func (r *Result) Group(name string) *domain.GroupedByModule {
	for _, g := range r.GroupedByModule {
		if g.Name == name {
			return g
		}
	}
	return nil
}

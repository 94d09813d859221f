package view

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
	"github.com/bomsquad/shoplist/internal/service/pricing"
)

// RowKind tags the rows of the aggregated table. The trailing total row is a
// first-class variant, not a component with magic fields, so renderers
// switch on the tag instead of probing for optional fields.
type RowKind int

const (
	RowComponent RowKind = iota
	RowTotal
)

type Row struct {
	Kind      RowKind
	Component *domain.AggregatedComponent // nil iff Kind == RowTotal
}

// Rows builds the table rows from the aggregated components plus the
// synthetic trailing total row that carries the footer cells.
func Rows(aggregated []*domain.AggregatedComponent) []Row {
	rows := make([]Row, 0, len(aggregated)+1)
	for _, a := range aggregated {
		rows = append(rows, Row{Kind: RowComponent, Component: a})
	}
	rows = append(rows, Row{Kind: RowTotal})
	return rows
}

// ColumnFamily is one of the table's column groups.
type ColumnFamily int

const (
	FamilyLabels ColumnFamily = iota
	FamilyModule
	FamilyTotalQuantity
	FamilyTotalPrice
	FamilyMigrate
)

// Slice is one column of the aggregated view.
type Slice struct {
	Family ColumnFamily
	Module *domain.GroupedByModule // set iff Family == FamilyModule
}

// SliceAt maps a column index onto its family: 0 is the shared label column,
// 1..N are the module columns, then total quantity, total price, and, in the
// live (non-archived) view only, the migrate action column.
func SliceAt(index int, groups []*domain.GroupedByModule, archived bool) (Slice, error) {
	n := len(groups)
	switch {
	case index == 0:
		return Slice{Family: FamilyLabels}, nil
	case index >= 1 && index <= n:
		return Slice{Family: FamilyModule, Module: groups[index-1]}, nil
	case index == n+1:
		return Slice{Family: FamilyTotalQuantity}, nil
	case index == n+2:
		return Slice{Family: FamilyTotalPrice}, nil
	case index == n+3 && !archived:
		return Slice{Family: FamilyMigrate}, nil
	}
	return Slice{}, fmt.Errorf("column index %d out of range: %w", index, constants.ErrValidation)
}

// Slices enumerates every column of the view in order.
func Slices(groups []*domain.GroupedByModule, archived bool) []Slice {
	n := len(groups)
	total := n + 3
	if !archived {
		total++
	}

	slices := make([]Slice, 0, total)
	for i := 0; i < total; i++ {
		s, err := SliceAt(i, groups, archived)
		if err != nil {
			break
		}
		slices = append(slices, s)
	}
	return slices
}

// CellKind tags a rendered cell.
type CellKind int

const (
	CellBlank CellKind = iota
	CellLabel
	CellQuantity
	CellPrice
	CellAction
)

type Cell struct {
	Kind     CellKind
	Text     string
	Quantity int64
	Price    decimal.Decimal
	// Editable marks cells with an inline edit affordance. Rendering a cell
	// has no side effect; edits go through the reconciler.
	Editable bool
}

// Header names the slice's column.
func (s Slice) Header() string {
	switch s.Family {
	case FamilyLabels:
		return "Component"
	case FamilyModule:
		return s.Module.Name
	case FamilyTotalQuantity:
		return "Total qty"
	case FamilyTotalPrice:
		return "Total price"
	case FamilyMigrate:
		return "Inventory"
	}
	return ""
}

// Cells renders the slice's value for every row, the total row included.
func (s Slice) Cells(rows []Row, currency *domain.Currency) []Cell {
	cells := make([]Cell, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, s.cell(rows, row, currency))
	}
	return cells
}

func (s Slice) cell(rows []Row, row Row, currency *domain.Currency) Cell {
	if row.Kind == RowTotal {
		return s.totalCell(rows, currency)
	}

	c := row.Component
	switch s.Family {
	case FamilyLabels:
		text := fmt.Sprintf("%s (%s %s)", c.Component.Description, c.Component.Supplier.ShortName, c.Component.SupplierItemNo)
		return Cell{Kind: CellLabel, Text: text, Price: pricing.Convert(currency, c.Component.Price)}
	case FamilyModule:
		return Cell{Kind: CellQuantity, Quantity: s.Module.Quantity(c.Component.ID), Editable: true}
	case FamilyTotalQuantity:
		return Cell{Kind: CellQuantity, Quantity: c.TotalQuantity}
	case FamilyTotalPrice:
		return Cell{Kind: CellPrice, Price: pricing.RowTotal(currency, c.Component, c.TotalQuantity)}
	case FamilyMigrate:
		return Cell{Kind: CellAction, Text: "add to inventory"}
	}
	return Cell{}
}

func (s Slice) totalCell(rows []Row, currency *domain.Currency) Cell {
	switch s.Family {
	case FamilyLabels:
		return Cell{Kind: CellLabel, Text: "TOTAL"}
	case FamilyTotalQuantity:
		var total int64
		for _, row := range rows {
			if row.Kind == RowComponent {
				total += row.Component.TotalQuantity
			}
		}
		return Cell{Kind: CellQuantity, Quantity: total}
	case FamilyTotalPrice:
		total := decimal.Zero
		for _, row := range rows {
			if row.Kind == RowComponent {
				total = total.Add(pricing.RowTotal(currency, row.Component.Component, row.Component.TotalQuantity))
			}
		}
		return Cell{Kind: CellPrice, Price: total}
	}
	return Cell{Kind: CellBlank}
}

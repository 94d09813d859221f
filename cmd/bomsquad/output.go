package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/view"
)

// renderList prints the aggregated table: label column, one column per
// module, total columns, and the footer row.
func (a *app) renderList(ctx context.Context, w io.Writer) error {
	snapshot, err := a.list.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("list.Snapshot: %w", err)
	}

	currency, err := a.pricing.DisplayCurrency(ctx)
	if err != nil {
		return fmt.Errorf("pricing.DisplayCurrency: %w", err)
	}

	rows := view.Rows(snapshot.AggregatedComponents)
	slices := view.Slices(snapshot.GroupedByModule, a.archived)

	columns := make([][]view.Cell, len(slices))
	for i, s := range slices {
		columns[i] = s.Cells(rows, currency)
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, s := range slices {
		fmt.Fprintf(tw, "%s\t", s.Header())
	}
	fmt.Fprintln(tw)

	for r := range rows {
		for _, cells := range columns {
			fmt.Fprintf(tw, "%s\t", formatCell(cells[r], currency))
		}
		fmt.Fprintln(tw)
	}
	if err = tw.Flush(); err != nil {
		return fmt.Errorf("tabwriter.Flush: %w", err)
	}

	totals, err := a.pricing.GrandTotal(ctx)
	if err != nil {
		return fmt.Errorf("pricing.GrandTotal: %w", err)
	}
	fmt.Fprintf(w, "\nserver total: %s–%s %s\n",
		totals.TotalMinPrice.StringFixed(2), totals.TotalMaxPrice.StringFixed(2), currency.Code)

	return nil
}

func formatCell(c view.Cell, currency *domain.Currency) string {
	switch c.Kind {
	case view.CellLabel:
		if c.Price.IsZero() {
			return c.Text
		}
		return fmt.Sprintf("%s @ %s", c.Text, c.Price.StringFixed(2))
	case view.CellQuantity:
		return fmt.Sprintf("%d", c.Quantity)
	case view.CellPrice:
		return fmt.Sprintf("%s %s", c.Price.StringFixed(2), currency.Code)
	case view.CellAction:
		return "[" + c.Text + "]"
	}
	return ""
}

package view

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/pkg/restapi/restapitest"
	"github.com/bomsquad/shoplist/internal/service/aggregate"
)

var usd = &domain.Currency{Code: "USD", ExchangeRate: decimal.NewFromInt(1)}

func testResult() *aggregate.Result {
	return aggregate.Aggregate(restapitest.SynthEntries())
}

func TestSliceAt_Families(t *testing.T) {
	res := testResult()
	n := len(res.GroupedByModule)

	cases := []struct {
		index    int
		archived bool
		want     ColumnFamily
	}{
		{0, false, FamilyLabels},
		{1, false, FamilyModule},
		{n, false, FamilyModule},
		{n + 1, false, FamilyTotalQuantity},
		{n + 2, false, FamilyTotalPrice},
		{n + 3, false, FamilyMigrate},
	}
	for _, tc := range cases {
		s, err := SliceAt(tc.index, res.GroupedByModule, tc.archived)
		if err != nil {
			t.Fatalf("index %d: %v", tc.index, err)
		}
		if s.Family != tc.want {
			t.Errorf("index %d: family %d, want %d", tc.index, s.Family, tc.want)
		}
	}
}

func TestSliceAt_ArchivedViewHasNoMigrateColumn(t *testing.T) {
	res := testResult()
	n := len(res.GroupedByModule)

	if _, err := SliceAt(n+3, res.GroupedByModule, true); err == nil {
		t.Error("archived view must not expose the migrate column")
	}

	slices := Slices(res.GroupedByModule, true)
	for _, s := range slices {
		if s.Family == FamilyMigrate {
			t.Error("archived slices contain a migrate column")
		}
	}
}

// The total-quantity column must equal the per-module columns summed row by
// row.
func TestCells_TotalColumnMatchesModuleColumns(t *testing.T) {
	res := testResult()
	rows := Rows(res.AggregatedComponents)

	var moduleSlices []Slice
	for i := 1; i <= len(res.GroupedByModule); i++ {
		s, err := SliceAt(i, res.GroupedByModule, false)
		if err != nil {
			t.Fatal(err)
		}
		moduleSlices = append(moduleSlices, s)
	}
	totalSlice, err := SliceAt(len(res.GroupedByModule)+1, res.GroupedByModule, false)
	if err != nil {
		t.Fatal(err)
	}

	totals := totalSlice.Cells(rows, usd)
	for r, row := range rows {
		if row.Kind != RowComponent {
			continue
		}
		var sum int64
		for _, ms := range moduleSlices {
			sum += ms.Cells(rows, usd)[r].Quantity
		}
		if sum != totals[r].Quantity {
			t.Errorf("row %d: module sum %d != total %d", r, sum, totals[r].Quantity)
		}
	}
}

func TestRows_AppendsTotalRow(t *testing.T) {
	res := testResult()
	rows := Rows(res.AggregatedComponents)

	if len(rows) != len(res.AggregatedComponents)+1 {
		t.Fatalf("rows = %d, want components + 1", len(rows))
	}
	last := rows[len(rows)-1]
	if last.Kind != RowTotal || last.Component != nil {
		t.Errorf("trailing row = %+v, want the tagged total row", last)
	}
}

func TestCells_TotalRow(t *testing.T) {
	res := testResult()
	rows := Rows(res.AggregatedComponents)
	footer := len(rows) - 1

	labels, _ := SliceAt(0, res.GroupedByModule, false)
	if got := labels.Cells(rows, usd)[footer]; got.Kind != CellLabel || got.Text != "TOTAL" {
		t.Errorf("label footer = %+v", got)
	}

	moduleCol, _ := SliceAt(1, res.GroupedByModule, false)
	if got := moduleCol.Cells(rows, usd)[footer]; got.Kind != CellBlank {
		t.Errorf("module footer should be blank, got %+v", got)
	}
	if got := moduleCol.Cells(rows, usd)[footer]; got.Editable {
		t.Error("the total row must never be editable")
	}

	totalQty, _ := SliceAt(len(res.GroupedByModule)+1, res.GroupedByModule, false)
	if got := totalQty.Cells(rows, usd)[footer]; got.Quantity != 6 {
		t.Errorf("grand total quantity = %d, want 6", got.Quantity)
	}

	// 5 resistors at 0.10 plus 1 capacitor at 0.04.
	totalPrice, _ := SliceAt(len(res.GroupedByModule)+2, res.GroupedByModule, false)
	want := decimal.RequireFromString("0.54")
	if got := totalPrice.Cells(rows, usd)[footer]; !got.Price.Equal(want) {
		t.Errorf("grand total price = %s, want %s", got.Price, want)
	}
}

func TestCells_ModuleColumn(t *testing.T) {
	res := testResult()
	rows := Rows(res.AggregatedComponents)

	moduleA, _ := SliceAt(1, res.GroupedByModule, false)
	cells := moduleA.Cells(rows, usd)

	// Rows sort by supplier: Banzai capacitor first, Mouser resistor second.
	if cells[0].Quantity != 1 || cells[1].Quantity != 2 {
		t.Errorf("module A cells = %d, %d; want 1, 2", cells[0].Quantity, cells[1].Quantity)
	}
	for _, c := range cells[:2] {
		if !c.Editable {
			t.Error("module quantity cells carry the edit affordance")
		}
	}
}

func TestCells_PriceConversion(t *testing.T) {
	res := testResult()
	rows := Rows(res.AggregatedComponents)
	sek := &domain.Currency{Code: "SEK", ExchangeRate: decimal.RequireFromString("10.5")}

	totalPrice, _ := SliceAt(len(res.GroupedByModule)+2, res.GroupedByModule, false)
	cells := totalPrice.Cells(rows, sek)

	// Resistor row: 5 * 0.10 * 10.5.
	want := decimal.RequireFromString("5.25")
	if !cells[1].Price.Equal(want) {
		t.Errorf("converted price = %s, want %s", cells[1].Price, want)
	}
}

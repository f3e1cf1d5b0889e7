package cellfmt

import (
	"testing"

	"chemtab/table"
)

func TestCell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value table.Value
		want  string
	}{
		{"null renders empty", table.Null(), ""},
		{"string passes through", table.String("CCO"), "CCO"},
		{"whole number has no fraction", table.Number(42), "42"},
		{"fractional number keeps digits", table.Number(46.07), "46.07"},
		{"bool true", table.Bool(true), "true"},
		{"named molecule renders its title", table.MolHandle(table.NewMol("ethanol", "...")), "ethanol"},
		{"unnamed molecule renders placeholder", table.MolHandle(table.NewMol("", "...")), "(molecule)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Cell(tc.value); got != tc.want {
				t.Fatalf("Cell(%v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestRow(t *testing.T) {
	t.Parallel()

	got := Row([]table.Value{table.String("CCO"), table.Number(46.07), table.Null()})
	want := []string{"CCO", "46.07", ""}
	if len(got) != len(want) {
		t.Fatalf("Row returned %d cells, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}

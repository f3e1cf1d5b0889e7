package cellfmt

import (
	"strconv"

	"chemtab/table"
)

// Cell renders one table cell for display. Null cells render empty, molecule
// handles render as their record title.
func Cell(v table.Value) string {
	switch v.Kind() {
	case table.KindNull:
		return ""
	case table.KindNumber:
		f, _ := v.AsNumber()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case table.KindBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case table.KindMol:
		m, _ := v.AsMol()
		if m.Name() != "" {
			return m.Name()
		}
		return "(molecule)"
	default:
		s, _ := v.AsString()
		return s
	}
}

// Row renders every cell of a row in order.
func Row(values []table.Value) []string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = Cell(v)
	}
	return cells
}

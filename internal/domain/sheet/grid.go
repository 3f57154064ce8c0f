package sheet

import (
	"strconv"
	"strings"
)

// Grid dimensions. Columns are the letters A to H, rows are 1 to 20.
const (
	Columns = "ABCDEFGH"
	Rows    = 20
)

// ErrorMarker is the display value of a formula that cannot be evaluated.
const ErrorMarker = "ERR"

// Cells maps a cell id such as "B7" to its raw content: empty, a literal,
// or a formula starting with "=".
type Cells map[string]string

// Clone returns a copy of c.
func (c Cells) Clone() Cells {
	out := make(Cells, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// IsFormula reports whether raw content is a formula.
func IsFormula(raw string) bool {
	return strings.HasPrefix(raw, "=")
}

// CellID builds the id of the cell at column col and row.
func CellID(col byte, row int) string {
	return string(col) + strconv.Itoa(row)
}

// ParseCellID splits an in-grid cell id into column letter and row. Ids are
// case-sensitive and rows have no leading zeros.
func ParseCellID(id string) (col byte, row int, ok bool) {
	if len(id) < 2 || len(id) > 3 {
		return 0, 0, false
	}
	col = id[0]
	if strings.IndexByte(Columns, col) < 0 {
		return 0, 0, false
	}
	if id[1] == '0' {
		return 0, 0, false
	}
	row, err := strconv.Atoi(id[1:])
	if err != nil || row < 1 || row > Rows {
		return 0, 0, false
	}
	return col, row, true
}

// ValidCellID reports whether id addresses a cell of the grid.
func ValidCellID(id string) bool {
	_, _, ok := ParseCellID(id)
	return ok
}

// CellIDs returns every cell id in row-major order: A1, B1, ... H20.
func CellIDs() []string {
	ids := make([]string, 0, len(Columns)*Rows)
	for row := 1; row <= Rows; row++ {
		for i := 0; i < len(Columns); i++ {
			ids = append(ids, CellID(Columns[i], row))
		}
	}
	return ids
}

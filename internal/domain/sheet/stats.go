package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the numeric cells of one column.
type Summary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
}

// ColumnSummary summarizes the cells of column col whose display value is
// a number. Text, empty and ErrorMarker cells are skipped.
func (s *Sheet) ColumnSummary(col string) (Summary, error) {
	if len(col) != 1 || !strings.Contains(Columns, col) {
		return Summary{}, fmt.Errorf("%w: column %q", ErrInvalidCell, col)
	}

	s.mu.RLock()
	var values []float64
	for row := 1; row <= Rows; row++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(s.result.Value(CellID(col[0], row))), 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			values = append(values, v)
		}
	}
	s.mu.RUnlock()

	return summarize(col, values), nil
}

func summarize(col string, values []float64) Summary {
	sum := Summary{Column: col, Count: len(values)}
	if len(values) == 0 {
		return sum
	}

	sum.Sum = floats.Sum(values)
	sum.Min = floats.Min(values)
	sum.Max = floats.Max(values)
	sum.Mean, sum.StdDev = stat.MeanStdDev(values, nil)
	if len(values) < 2 {
		sum.StdDev = 0
	}
	return sum
}

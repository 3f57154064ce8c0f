package sheet

import (
	"math"
	"sort"
)

// Result is one full recalculation of a sheet.
type Result struct {
	// Values holds the display value of every non-empty cell.
	Values map[string]string `json:"values"`
	// Cycles lists, sorted, the cells found on a reference cycle.
	Cycles []string `json:"cycles,omitempty"`
}

// Value returns the display value of a cell, empty for empty cells.
func (r Result) Value(id string) string {
	return r.Values[id]
}

// Engine evaluates cell stores. It keeps the compiled form of every
// formula it has seen so unchanged formulas are not parsed again.
// An Engine is not safe for concurrent use.
type Engine struct {
	compiled map[string]compiled
	// evaluated, when set, is called before each formula is evaluated.
	evaluated func(id string)
}

type compiled struct {
	raw     string
	formula *Formula
	err     error
}

// NewEngine creates an engine with an empty formula cache.
func NewEngine() *Engine {
	return &Engine{compiled: make(map[string]compiled)}
}

// Recalculate evaluates every cell of cells.
//
// Formulas are compiled and their references form a dependency graph.
// Cells on a cycle, including a cell referencing itself, are found before
// anything is evaluated and display ErrorMarker. The remaining formula
// cells are evaluated once each, dependencies first. A reference reads the
// numeric prefix of the referenced cell's value; empty, missing,
// non-numeric and ErrorMarker cells read as 0.
func (e *Engine) Recalculate(cells Cells) Result {
	ids := make([]string, 0, len(cells))
	for id, raw := range cells {
		if IsFormula(raw) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	e.prune(cells)

	graph := make(map[string][]string, len(ids))
	for _, id := range ids {
		c := e.compile(id, cells[id])
		if c.err != nil {
			continue
		}
		for _, ref := range c.formula.refs {
			if IsFormula(cells[ref]) {
				graph[id] = append(graph[id], ref)
			}
		}
	}

	order, cyclic := stronglyConnected(ids, graph)

	result := Result{Values: make(map[string]string, len(cells))}
	numbers := make(map[string]float64, len(ids))

	lookup := func(ref string) float64 {
		raw, ok := cells[ref]
		if !ok {
			return 0
		}
		if IsFormula(raw) {
			return numbers[ref]
		}
		f, ok := ParseLeadingFloat(raw)
		if !ok {
			return 0
		}
		return f
	}

	for _, id := range order {
		c := e.compiled[id]
		if cyclic[id] || c.err != nil {
			result.Values[id] = ErrorMarker
			continue
		}
		if e.evaluated != nil {
			e.evaluated(id)
		}
		v := c.formula.Eval(lookup)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			result.Values[id] = ErrorMarker
			continue
		}
		numbers[id] = v
		result.Values[id] = FormatNumber(v)
	}

	for id, raw := range cells {
		if raw != "" && !IsFormula(raw) {
			result.Values[id] = raw
		}
	}

	for id := range cyclic {
		result.Cycles = append(result.Cycles, id)
	}
	sort.Strings(result.Cycles)

	return result
}

// Evaluate is a one-shot recalculation with a throwaway engine.
func Evaluate(cells Cells) Result {
	return NewEngine().Recalculate(cells)
}

func (e *Engine) compile(id, raw string) compiled {
	if c, ok := e.compiled[id]; ok && c.raw == raw {
		return c
	}
	f, err := Compile(raw[1:])
	c := compiled{raw: raw, formula: f, err: err}
	e.compiled[id] = c
	return c
}

// prune forgets compiled formulas of cells that no longer hold one.
func (e *Engine) prune(cells Cells) {
	for id := range e.compiled {
		if !IsFormula(cells[id]) {
			delete(e.compiled, id)
		}
	}
}

// stronglyConnected runs Tarjan's algorithm over the formula cells. It
// returns the cells in evaluation order, every cell after the cells it
// depends on, and the set of cells that sit on a cycle.
func stronglyConnected(ids []string, graph map[string][]string) ([]string, map[string]bool) {
	var (
		index   = 0
		indices = make(map[string]int, len(ids))
		lowlink = make(map[string]int, len(ids))
		onStack = make(map[string]bool, len(ids))
		stack   []string
		order   = make([]string, 0, len(ids))
		cyclic  = make(map[string]bool)
	)

	var visit func(v string)
	visit = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		selfLoop := false
		for _, w := range graph[v] {
			if w == v {
				selfLoop = true
			}
			if _, seen := indices[w]; !seen {
				visit(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] != indices[v] {
			return
		}

		// v is the root of a component; pop it.
		var component []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		if len(component) > 1 || selfLoop {
			for _, w := range component {
				cyclic[w] = true
			}
		}
		order = append(order, component...)
	}

	for _, id := range ids {
		if _, seen := indices[id]; !seen {
			visit(id)
		}
	}

	return order, cyclic
}

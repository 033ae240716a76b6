/*
Package sparse implements sparse integer matrix types for parser tables
(the GOTO table and the ACTION table, in both LR and GLR mode).

Parser tables are mostly empty: for any given state, only a handful of
the grammar's terminals have an action. Storing them densely wastes
memory proportional to states × terminals, most of which is unused.
IntMatrix uses COO (triplet) encoding instead, and ActionMatrix keeps a
map from cell to action list; COO is described at

	https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package sparse

import "fmt"

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue int32 = -2147483648

// IntMatrix is a sparse matrix holding a single int32 per cell. It backs
// the GOTO table, which is unambiguous even in GLR mode: a given
// (state, non-terminal) pair has exactly one successor state.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    int32
}

// NewIntMatrix creates an m x n matrix; nullValue marks an empty cell.
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{rowcnt: m, colcnt: n, nullval: nullValue}
}

// M returns the row count.
func (m *IntMatrix) M() int { return m.rowcnt }

// N returns the column count.
func (m *IntMatrix) N() int { return m.colcnt }

// NullValue returns this matrix's null value.
func (m *IntMatrix) NullValue() int32 { return m.nullval }

// ValueCount returns the number of non-null cells.
func (m *IntMatrix) ValueCount() int { return len(m.values) }

// Value returns the value at (i,j), or NullValue if unset.
func (m *IntMatrix) Value(i, j int) int32 {
	if k, ok := m.find(i, j); ok {
		return m.values[k].value
	}
	return m.nullval
}

// Set stores value at (i,j), overwriting any previous value.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	if k, ok := m.find(i, j); ok {
		m.values[k].value = value
		return m
	}
	at := m.insertionPoint(i, j)
	m.values = append(m.values, triplet{})
	copy(m.values[at+1:], m.values[at:])
	m.values[at] = triplet{row: i, col: j, value: value}
	return m
}

func (m *IntMatrix) find(i, j int) (int, bool) {
	for k, t := range m.values {
		if t.row == i && t.col == j {
			return k, true
		}
		if t.row > i || (t.row == i && t.col > j) {
			break
		}
	}
	return 0, false
}

func (m *IntMatrix) insertionPoint(i, j int) int {
	at := 0
	for _, t := range m.values {
		if t.row < i || (t.row == i && t.col < j) {
			at++
			continue
		}
		break
	}
	return at
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=%d", t.row, t.col, t.value)
}

// ActionMatrix is a sparse matrix holding an ORDERED LIST of int32
// actions per cell. A deterministic (LR) table never has more than one
// action per cell once conflicts are resolved; GLR table construction
// deliberately keeps every shift and every reduce that survives
// precedence filtering, so the runtime can explore all of them at once.
type ActionMatrix struct {
	rows    map[int64][]int32
	rowcnt  int
	colcnt  int
	nullval int32
}

// NewActionMatrix creates an m x n action matrix; nullValue marks a cell
// with no actions at all.
func NewActionMatrix(m, n int, nullValue int32) *ActionMatrix {
	return &ActionMatrix{rows: make(map[int64][]int32), rowcnt: m, colcnt: n, nullval: nullValue}
}

// M returns the row count.
func (m *ActionMatrix) M() int { return m.rowcnt }

// N returns the column count.
func (m *ActionMatrix) N() int { return m.colcnt }

// NullValue returns this matrix's null value.
func (m *ActionMatrix) NullValue() int32 { return m.nullval }

func cellKey(i, j int) int64 { return int64(i)<<32 | int64(uint32(j)) }

// Add appends an action to cell (i,j), preserving insertion order.
// Adding the same action value twice is a no-op.
func (m *ActionMatrix) Add(i, j int, action int32) *ActionMatrix {
	k := cellKey(i, j)
	for _, a := range m.rows[k] {
		if a == action {
			return m
		}
	}
	m.rows[k] = append(m.rows[k], action)
	return m
}

// Set replaces the entire action list at (i,j) with a single action,
// discarding any previous ones. Used once LR-mode conflict resolution
// has picked a single winner for the cell.
func (m *ActionMatrix) Set(i, j int, action int32) *ActionMatrix {
	m.rows[cellKey(i, j)] = []int32{action}
	return m
}

// Values returns every action stored at (i,j), in insertion order. An
// empty cell returns a nil slice.
func (m *ActionMatrix) Values(i, j int) []int32 {
	return m.rows[cellKey(i, j)]
}

// Value returns the first action at (i,j), or NullValue if the cell is
// empty. Convenience for callers that know the cell is unambiguous.
func (m *ActionMatrix) Value(i, j int) int32 {
	if vs := m.rows[cellKey(i, j)]; len(vs) > 0 {
		return vs[0]
	}
	return m.nullval
}

// HasConflict reports whether (i,j) carries more than one action.
func (m *ActionMatrix) HasConflict(i, j int) bool {
	return len(m.rows[cellKey(i, j)]) > 1
}

// ValueCount returns the number of cells holding at least one action.
func (m *ActionMatrix) ValueCount() int {
	return len(m.rows)
}

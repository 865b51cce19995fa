package ufl

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Sense and VarType use Gurobi's character codes.
type Sense byte

const (
	LessEqual    Sense = '<'
	GreaterEqual Sense = '>'
	Equal        Sense = '='
)

type VarType byte

const (
	Continuous VarType = 'C'
	Binary     VarType = 'B'
	Integer    VarType = 'I'
)

type VarKind int

const (
	OpenVar VarKind = iota
	AssignVar
)

// VarIndex maps open[j] and assign[i,j] onto dense columns: all open
// variables first, then the assignments in row-major (store, facility) order.
type VarIndex struct {
	Stores     int
	Facilities int
}

func (x VarIndex) NumVars() int {
	return x.Facilities + x.Stores*x.Facilities
}

func (x VarIndex) Open(j int) int {
	return j
}

func (x VarIndex) Assign(i, j int) int {
	return x.Facilities + i*x.Facilities + j
}

// Lookup inverts Open and Assign. For open variables i is -1.
func (x VarIndex) Lookup(col int) (kind VarKind, i, j int, err error) {
	if col < 0 || col >= x.NumVars() {
		return 0, -1, -1, errors.Errorf("column %d out of range [0,%d)", col, x.NumVars())
	}
	if col < x.Facilities {
		return OpenVar, -1, col, nil
	}
	k := col - x.Facilities
	return AssignVar, k / x.Facilities, k % x.Facilities, nil
}

func (x VarIndex) Name(col int) string {
	kind, i, j, err := x.Lookup(col)
	if err != nil {
		return fmt.Sprintf("x_%d", col)
	}
	if kind == OpenVar {
		return fmt.Sprintf("open_%d", j)
	}
	return fmt.Sprintf("assign_%d_%d", i, j)
}

// Triplets is a sparse matrix as three parallel arrays.
type Triplets struct {
	Row []int
	Col []int
	Val []float64
}

func (t *Triplets) Add(row, col int, val float64) {
	t.Row = append(t.Row, row)
	t.Col = append(t.Col, col)
	t.Val = append(t.Val, val)
}

func (t *Triplets) Len() int {
	return len(t.Val)
}

// Validate checks the arrays line up, every entry lies inside rows×cols and
// no (row, col) pair appears twice.
func (t *Triplets) Validate(rows, cols int) error {
	if len(t.Row) != len(t.Val) || len(t.Col) != len(t.Val) {
		return errors.Wrapf(ErrDimensionMismatch, "triplet arrays %d/%d/%d", len(t.Row), len(t.Col), len(t.Val))
	}
	seen := make(map[[2]int]struct{}, len(t.Val))
	for k := range t.Val {
		r, c := t.Row[k], t.Col[k]
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return errors.Wrapf(ErrDimensionMismatch, "entry (%d,%d) outside %dx%d", r, c, rows, cols)
		}
		if _, ok := seen[[2]int{r, c}]; ok {
			return errors.Wrapf(ErrDuplicateEntry, "(%d,%d)", r, c)
		}
		seen[[2]int{r, c}] = struct{}{}
	}
	return nil
}

// CSR groups the entries by row, keeping their order within a row.
func (t *Triplets) CSR(rows int) (ind [][]int32, val [][]float64) {
	ind = make([][]int32, rows)
	val = make([][]float64, rows)
	for k := range t.Val {
		r := t.Row[k]
		ind[r] = append(ind[r], int32(t.Col[k]))
		val[r] = append(val[r], t.Val[k])
	}
	return ind, val
}

type Model struct {
	Index VarIndex

	Obj   []float64
	LB    []float64
	UB    []float64
	VType []VarType

	A        Triplets
	Sense    []Sense
	RHS      []float64
	RowNames []string
}

func (m *Model) NumVars() int {
	return len(m.Obj)
}

func (m *Model) NumRows() int {
	return len(m.RHS)
}

func (m *Model) Validate() error {
	n := m.NumVars()
	if len(m.LB) != n || len(m.UB) != n || len(m.VType) != n {
		return errors.Wrapf(ErrDimensionMismatch, "%d columns, bounds %d/%d, types %d", n, len(m.LB), len(m.UB), len(m.VType))
	}
	if len(m.Sense) != m.NumRows() {
		return errors.Wrapf(ErrDimensionMismatch, "%d right-hand sides, %d senses", m.NumRows(), len(m.Sense))
	}
	return m.A.Validate(m.NumRows(), n)
}

// BuildModel assembles the facility-location MIP from the facility fixed
// costs and the store×facility cost matrix.
//
// Rows 0..N-1 force every store to be served exactly once. Row N + j*N + i
// links assign[i,j] to open[j] as open[j] - assign[i,j] >= 0.
func BuildModel(fixed []float64, cost *mat.Dense) (*Model, error) {
	if cost == nil || len(fixed) == 0 {
		return nil, ErrEmpty
	}
	n, m := cost.Dims()
	if n == 0 || m == 0 {
		return nil, ErrEmpty
	}
	if len(fixed) != m {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%d fixed costs for %d facilities", len(fixed), m)
	}

	idx := VarIndex{Stores: n, Facilities: m}
	vars := idx.NumVars()
	model := &Model{
		Index: idx,
		Obj:   make([]float64, 0, vars),
		LB:    make([]float64, vars),
		UB:    make([]float64, vars),
		VType: make([]VarType, vars),
	}

	for j, f := range fixed {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.Wrapf(ErrInvalidCost, "fixed cost %d: %v", j, f)
		}
		model.Obj = append(model.Obj, f)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			c := cost.At(i, j)
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, errors.Wrapf(ErrInvalidCost, "cost (%d,%d): %v", i, j, c)
			}
			model.Obj = append(model.Obj, c)
		}
	}
	for k := 0; k < vars; k++ {
		model.UB[k] = 1
		model.VType[k] = Binary
	}

	/* each store is served by exactly one facility */
	for i := 0; i < n; i++ {
		row := model.NumRows()
		for j := 0; j < m; j++ {
			model.A.Add(row, idx.Assign(i, j), 1)
		}
		model.Sense = append(model.Sense, Equal)
		model.RHS = append(model.RHS, 1)
		model.RowNames = append(model.RowNames, fmt.Sprintf("serve_%d", i))
	}

	/* a store may only use an open facility */
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			row := model.NumRows()
			model.A.Add(row, idx.Open(j), 1)
			model.A.Add(row, idx.Assign(i, j), -1)
			model.Sense = append(model.Sense, GreaterEqual)
			model.RHS = append(model.RHS, 0)
			model.RowNames = append(model.RowNames, fmt.Sprintf("link_%d_%d", i, j))
		}
	}
	return model, nil
}

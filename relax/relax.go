// Package relax bounds a facility-location model from below by solving its
// LP relaxation with gonum's simplex. The dense formulation grows with
// rows×columns, so it is meant for small instances only.
package relax

import (
	"math"

	"git.solver4all.com/azaryc2s/ufl"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const tol = 1e-10

// Bound drops integrality and returns the optimal LP objective, a lower
// bound for every integer solution of m.
//
// The model goes straight into standard form (min cᵀy, Ay = b, y ≥ 0):
// columns are shifted by their lower bound, every inequality row gets its own
// slack or surplus column and every finite upper bound becomes a row
// x_c + s_c = UB_c with a slack of its own.
func Bound(m *ufl.Model) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	n := m.NumVars()
	if n == 0 {
		return 0, ufl.ErrEmpty
	}
	rows := m.NumRows()
	ind, val := m.A.CSR(rows)

	offset := 0.0
	rhs := make([]float64, rows)
	copy(rhs, m.RHS)
	used := make([]bool, n)
	for c := 0; c < n; c++ {
		if math.IsInf(m.LB[c], -1) {
			return 0, errors.Errorf("column %s has no lower bound", m.Index.Name(c))
		}
		offset += m.Obj[c] * m.LB[c]
	}
	for r := 0; r < rows; r++ {
		for k, c := range ind[r] {
			rhs[r] -= val[r][k] * m.LB[c]
			used[c] = true
		}
	}

	// column layout: kept model columns, one slack per inequality row, one
	// slack per finite upper bound
	col := make([]int, n)
	cols := 0
	for c := 0; c < n; c++ {
		col[c] = -1
		if !used[c] && math.IsInf(m.UB[c], 1) {
			// appears nowhere; sits at its lower bound unless it pays to grow
			if m.Obj[c] < 0 {
				return 0, errors.Wrapf(lp.ErrUnbounded, "column %s", m.Index.Name(c))
			}
			continue
		}
		col[c] = cols
		cols++
	}
	var bounded []int
	for c := 0; c < n; c++ {
		if !math.IsInf(m.UB[c], 1) {
			if m.UB[c] < m.LB[c] {
				return 0, errors.Wrapf(lp.ErrInfeasible, "column %s has bounds [%v, %v]", m.Index.Name(c), m.LB[c], m.UB[c])
			}
			bounded = append(bounded, c)
		}
	}
	slackRows := 0
	for r := 0; r < rows; r++ {
		if m.Sense[r] != ufl.Equal {
			slackRows++
		}
	}
	total := cols + slackRows + len(bounded)
	height := rows + len(bounded)

	a := mat.NewDense(height, total, nil)
	b := make([]float64, height)
	cost := make([]float64, total)
	for c := 0; c < n; c++ {
		if col[c] >= 0 {
			cost[col[c]] = m.Obj[c]
		}
	}

	next := cols
	for r := 0; r < rows; r++ {
		for k, c := range ind[r] {
			a.Set(r, col[c], a.At(r, col[c])+val[r][k])
		}
		b[r] = rhs[r]
		switch m.Sense[r] {
		case ufl.Equal:
		case ufl.LessEqual:
			a.Set(r, next, 1)
			next++
		case ufl.GreaterEqual:
			a.Set(r, next, -1)
			next++
		default:
			return 0, errors.Errorf("row %d: unknown sense %q", r, m.Sense[r])
		}
	}
	for k, c := range bounded {
		r := rows + k
		a.Set(r, col[c], 1)
		a.Set(r, next, 1)
		next++
		b[r] = m.UB[c] - m.LB[c]
	}

	opt, _, err := lp.Simplex(cost, a, b, tol, nil)
	if err != nil {
		return 0, errors.Wrap(err, "simplex")
	}
	return opt + offset, nil
}

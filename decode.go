package ufl

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DefaultIntTol matches Gurobi's default IntFeasTol.
const DefaultIntTol = 1e-5

// Decision is a solver vector read back through the variable index.
type Decision struct {
	Open   []bool
	Assign []int
}

// Decode reads x back into open/assign decisions with DefaultIntTol.
func Decode(idx VarIndex, x []float64) (*Decision, error) {
	return DecodeTol(idx, x, DefaultIntTol)
}

// DecodeTol is Decode with an explicit integrality tolerance. Every value has
// to be binary within tol, every store served once, and only by open
// facilities.
func DecodeTol(idx VarIndex, x []float64, tol float64) (*Decision, error) {
	if len(x) != idx.NumVars() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "vector of %d for %d columns", len(x), idx.NumVars())
	}
	for col, v := range x {
		if math.Abs(v) > tol && math.Abs(v-1) > tol {
			return nil, errors.Wrapf(ErrInconsistentResult, "%s = %v is not binary", idx.Name(col), v)
		}
	}

	d := &Decision{
		Open:   make([]bool, idx.Facilities),
		Assign: make([]int, idx.Stores),
	}
	for j := 0; j < idx.Facilities; j++ {
		d.Open[j] = x[idx.Open(j)] > 0.5
	}
	for i := 0; i < idx.Stores; i++ {
		d.Assign[i] = -1
		for j := 0; j < idx.Facilities; j++ {
			if x[idx.Assign(i, j)] <= 0.5 {
				continue
			}
			if d.Assign[i] >= 0 {
				return nil, errors.Wrapf(ErrInconsistentResult, "store %d assigned to %d and %d", i, d.Assign[i], j)
			}
			if !d.Open[j] {
				return nil, errors.Wrapf(ErrInconsistentResult, "store %d assigned to closed facility %d", i, j)
			}
			d.Assign[i] = j
		}
		if d.Assign[i] < 0 {
			return nil, errors.Wrapf(ErrInconsistentResult, "store %d unassigned", i)
		}
	}
	return d, nil
}

func (d *Decision) OpenList() []int {
	open := []int{}
	for j, o := range d.Open {
		if o {
			open = append(open, j)
		}
	}
	return open
}

// Cost recomputes the objective of the decision.
func (d *Decision) Cost(fixed []float64, cost *mat.Dense) float64 {
	sum := 0.0
	for j, o := range d.Open {
		if o {
			sum += fixed[j]
		}
	}
	for i, j := range d.Assign {
		sum += cost.At(i, j)
	}
	return sum
}

// SelectionFrequency is the share of decisions opening each facility.
func SelectionFrequency(decisions []*Decision) []float64 {
	if len(decisions) == 0 {
		return nil
	}
	freq := make([]float64, len(decisions[0].Open))
	for _, d := range decisions {
		for j, o := range d.Open {
			if o {
				freq[j]++
			}
		}
	}
	for j := range freq {
		freq[j] /= float64(len(decisions))
	}
	return freq
}

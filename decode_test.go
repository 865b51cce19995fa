package ufl_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"git.solver4all.com/azaryc2s/ufl"
)

// vector builds a solution vector from opened facilities and assignments.
func vector(idx ufl.VarIndex, open []int, assign []int) []float64 {
	x := make([]float64, idx.NumVars())
	for _, j := range open {
		x[idx.Open(j)] = 1
	}
	for i, j := range assign {
		x[idx.Assign(i, j)] = 1
	}
	return x
}

func TestDecodeRoundTrip(t *testing.T) {
	idx := ufl.VarIndex{Stores: 4, Facilities: 3}
	x := vector(idx, []int{0, 2}, []int{2, 0, 0, 2})
	x[idx.Open(2)] = 1 - 1e-9

	d, err := ufl.Decode(idx, x)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, d.Open)
	assert.Equal(t, []int{2, 0, 0, 2}, d.Assign)
	assert.Equal(t, []int{0, 2}, d.OpenList())

	for i, j := range d.Assign {
		assert.True(t, d.Open[j], "store %d uses closed facility %d", i, j)
	}
}

func TestDecodeSingleLocation(t *testing.T) {
	idx := ufl.VarIndex{Stores: 1, Facilities: 1}

	d, err := ufl.Decode(idx, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, d.Open)

	_, err = ufl.Decode(idx, []float64{0, 1})
	assert.True(t, errors.Is(err, ufl.ErrInconsistentResult), "assign without open")

	_, err = ufl.Decode(idx, []float64{1, 0})
	assert.True(t, errors.Is(err, ufl.ErrInconsistentResult), "unserved store")
}

func TestDecodeRejects(t *testing.T) {
	idx := ufl.VarIndex{Stores: 2, Facilities: 2}
	tests := []struct {
		name string
		x    []float64
		want error
	}{
		{"short vector", []float64{1, 1}, ufl.ErrDimensionMismatch},
		{"fractional", []float64{0.5, 1, 1, 0, 1, 0}, ufl.ErrInconsistentResult},
		{"double assignment", []float64{1, 1, 1, 1, 1, 0}, ufl.ErrInconsistentResult},
		{"closed facility", []float64{1, 0, 0, 1, 1, 0}, ufl.ErrInconsistentResult},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ufl.Decode(idx, tt.x)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecisionCost(t *testing.T) {
	cost := mat.NewDense(2, 2, []float64{0, 5, 5, 0})
	fixed := []float64{10, 20}
	m, err := ufl.BuildModel(fixed, cost)
	require.NoError(t, err)

	x := vector(m.Index, []int{0}, []int{0, 0})
	d, err := ufl.Decode(m.Index, x)
	require.NoError(t, err)
	assert.Equal(t, 15.0, d.Cost(fixed, cost))
	assert.Equal(t, 15.0, m.Evaluate(x))
}

func TestSelectionFrequency(t *testing.T) {
	assert.Nil(t, ufl.SelectionFrequency(nil))

	ds := []*ufl.Decision{
		{Open: []bool{true, false, false, true}},
		{Open: []bool{true, true, false, false}},
	}
	assert.Equal(t, []float64{1, 0.5, 0, 0.5}, ufl.SelectionFrequency(ds))
}

func TestDecodeTolerance(t *testing.T) {
	idx := ufl.VarIndex{Stores: 1, Facilities: 2}
	x := []float64{5e-6, 1 - 5e-6, 5e-6, 1 - 5e-6}

	_, err := ufl.DecodeTol(idx, x, 1e-6)
	assert.True(t, errors.Is(err, ufl.ErrInconsistentResult))

	d, err := ufl.Decode(idx, x)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, d.Open)
	assert.Equal(t, []int{1}, d.Assign)
}

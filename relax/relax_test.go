package relax_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"git.solver4all.com/azaryc2s/ufl"
	"git.solver4all.com/azaryc2s/ufl/relax"
)

func TestBoundSingleLocation(t *testing.T) {
	m, err := ufl.BuildModel([]float64{7}, mat.NewDense(1, 1, []float64{3}))
	require.NoError(t, err)

	lb, err := relax.Bound(m)
	require.NoError(t, err)
	assert.InDelta(t, 10, lb, 1e-6)
}

func TestBoundTwoLocations(t *testing.T) {
	m, err := ufl.BuildModel([]float64{10, 20}, mat.NewDense(2, 2, []float64{0, 5, 5, 0}))
	require.NoError(t, err)

	lb, err := relax.Bound(m)
	require.NoError(t, err)
	// opening facility 0 and sending store 1 there is already integral
	assert.InDelta(t, 15, lb, 1e-6)
}

func TestBoundBelowIntegerOptimum(t *testing.T) {
	// three stores, three candidates, every store cheap at two of them
	cost := mat.NewDense(3, 3, []float64{
		0, 0, 9,
		9, 0, 0,
		0, 9, 0,
	})
	m, err := ufl.BuildModel([]float64{4, 4, 4}, cost)
	require.NoError(t, err)

	lb, err := relax.Bound(m)
	require.NoError(t, err)
	// any integer solution opens two facilities (8); half of each suffices in the LP
	assert.InDelta(t, 6, lb, 1e-6)
}

func TestBoundRejectsBrokenModel(t *testing.T) {
	m, err := ufl.BuildModel([]float64{1}, mat.NewDense(1, 1, nil))
	require.NoError(t, err)
	m.UB = m.UB[:1]
	_, err = relax.Bound(m)
	assert.Error(t, err)

	m, err = ufl.BuildModel([]float64{1}, mat.NewDense(1, 1, nil))
	require.NoError(t, err)
	m.UB[0] = math.Inf(1)
	lb, err := relax.Bound(m)
	require.NoError(t, err)
	assert.InDelta(t, 1, lb, 1e-6)
}

func TestBoundTwoClusters(t *testing.T) {
	stores := []ufl.Location{
		{Lat: 50.0, Lon: 8.0, Demand: 10},
		{Lat: 50.1, Lon: 8.1, Demand: 5},
		{Lat: 52.5, Lon: 13.4, Demand: 8},
		{Lat: 52.4, Lon: 13.2, Demand: 2},
	}
	fixed := []float64{500, 800, 600, 900}
	cost, err := ufl.CostMatrix(stores, stores, 1)
	require.NoError(t, err)
	m, err := ufl.BuildModel(fixed, cost)
	require.NoError(t, err)

	lb, err := relax.Bound(m)
	require.NoError(t, err)

	// cheapest integer plan: facility 0 for the west, facility 2 for the east
	best := fixed[0] + fixed[2] + cost.At(1, 0) + cost.At(3, 2)
	assert.LessOrEqual(t, lb, best+1e-6)
	assert.InDelta(t, 1201.248, lb, 1e-3)
}

func TestBoundShiftsLowerBounds(t *testing.T) {
	m, err := ufl.BuildModel([]float64{10, 20}, mat.NewDense(2, 2, []float64{0, 5, 5, 0}))
	require.NoError(t, err)
	// with facility 1 forced open, serving both stores from it is cheapest
	m.LB[m.Index.Open(1)] = 1

	lb, err := relax.Bound(m)
	require.NoError(t, err)
	assert.InDelta(t, 25, lb, 1e-6)
}

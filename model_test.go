package ufl_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"git.solver4all.com/azaryc2s/ufl"
)

// rowEntries collects the (col -> val) map of every row.
func rowEntries(m *ufl.Model) []map[int]float64 {
	rows := make([]map[int]float64, m.NumRows())
	for r := range rows {
		rows[r] = map[int]float64{}
	}
	for k := 0; k < m.A.Len(); k++ {
		rows[m.A.Row[k]][m.A.Col[k]] += m.A.Val[k]
	}
	return rows
}

func TestBuildModelTwoLocations(t *testing.T) {
	cost := mat.NewDense(2, 2, []float64{0, 5, 5, 0})
	m, err := ufl.BuildModel([]float64{10, 20}, cost)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, []float64{10, 20, 0, 5, 5, 0}, m.Obj)
	assert.Equal(t, 6, m.NumRows())
	assert.Equal(t, []ufl.Sense{ufl.Equal, ufl.Equal, ufl.GreaterEqual, ufl.GreaterEqual, ufl.GreaterEqual, ufl.GreaterEqual}, m.Sense)
	assert.Equal(t, []float64{1, 1, 0, 0, 0, 0}, m.RHS)
	for col := 0; col < m.NumVars(); col++ {
		assert.Equal(t, 0.0, m.LB[col])
		assert.Equal(t, 1.0, m.UB[col])
		assert.Equal(t, ufl.Binary, m.VType[col])
	}
	assert.Equal(t, []string{"serve_0", "serve_1", "link_0_0", "link_1_0", "link_0_1", "link_1_1"}, m.RowNames)
}

func TestBuildModelSingleLocation(t *testing.T) {
	m, err := ufl.BuildModel([]float64{7}, mat.NewDense(1, 1, []float64{3}))
	require.NoError(t, err)

	rows := rowEntries(m)
	require.Len(t, rows, 2)
	assert.Equal(t, map[int]float64{1: 1}, rows[0], "assign[0,0] = 1")
	assert.Equal(t, ufl.Equal, m.Sense[0])
	assert.Equal(t, map[int]float64{0: 1, 1: -1}, rows[1], "open[0] >= assign[0,0]")
	assert.Equal(t, ufl.GreaterEqual, m.Sense[1])
}

func TestBuildModelStructure(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 4}, {3, 1}, {3, 3}, {5, 2}, {4, 7}} {
		n, mFac := dims[0], dims[1]
		cost := mat.NewDense(n, mFac, nil)
		fixed := make([]float64, mFac)
		for j := range fixed {
			fixed[j] = float64(100 + j)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < mFac; j++ {
				cost.Set(i, j, float64(i*10+j))
			}
		}

		m, err := ufl.BuildModel(fixed, cost)
		require.NoError(t, err)
		require.NoError(t, m.Validate())
		idx := m.Index

		require.Len(t, m.Obj, mFac+n*mFac, "dims %v", dims)
		require.Equal(t, n+n*mFac, m.NumRows())
		for j := 0; j < mFac; j++ {
			assert.Equal(t, fixed[j], m.Obj[idx.Open(j)])
		}
		for i := 0; i < n; i++ {
			for j := 0; j < mFac; j++ {
				assert.Equal(t, cost.At(i, j), m.Obj[idx.Assign(i, j)])
			}
		}

		rows := rowEntries(m)
		for i := 0; i < n; i++ {
			sum := 0.0
			for col, v := range rows[i] {
				kind, si, _, err := idx.Lookup(col)
				require.NoError(t, err)
				assert.Equal(t, ufl.AssignVar, kind)
				assert.Equal(t, i, si)
				sum += v
			}
			assert.Len(t, rows[i], mFac)
			assert.Equal(t, float64(mFac), sum)
		}
		for j := 0; j < mFac; j++ {
			for i := 0; i < n; i++ {
				r := n + j*n + i
				assert.Equal(t, map[int]float64{idx.Open(j): 1, idx.Assign(i, j): -1}, rows[r], "link row %d", r)
				assert.Equal(t, 0.0, m.RHS[r])
			}
		}
	}
}

func TestBuildModelErrors(t *testing.T) {
	_, err := ufl.BuildModel(nil, mat.NewDense(1, 1, nil))
	assert.True(t, errors.Is(err, ufl.ErrEmpty))

	_, err = ufl.BuildModel([]float64{1}, nil)
	assert.True(t, errors.Is(err, ufl.ErrEmpty))

	_, err = ufl.BuildModel([]float64{1, 2, 3}, mat.NewDense(2, 2, nil))
	assert.True(t, errors.Is(err, ufl.ErrDimensionMismatch))
}

func TestVarIndexBijective(t *testing.T) {
	idx := ufl.VarIndex{Stores: 4, Facilities: 3}
	require.Equal(t, 15, idx.NumVars())

	seen := map[int]bool{}
	for j := 0; j < idx.Facilities; j++ {
		col := idx.Open(j)
		kind, _, jj, err := idx.Lookup(col)
		require.NoError(t, err)
		assert.Equal(t, ufl.OpenVar, kind)
		assert.Equal(t, j, jj)
		seen[col] = true
	}
	prev := idx.Facilities - 1
	for i := 0; i < idx.Stores; i++ {
		for j := 0; j < idx.Facilities; j++ {
			col := idx.Assign(i, j)
			assert.Equal(t, prev+1, col, "row-major and contiguous")
			prev = col
			kind, ii, jj, err := idx.Lookup(col)
			require.NoError(t, err)
			assert.Equal(t, ufl.AssignVar, kind)
			assert.Equal(t, [2]int{i, j}, [2]int{ii, jj})
			seen[col] = true
		}
	}
	assert.Len(t, seen, idx.NumVars())

	_, _, _, err := idx.Lookup(idx.NumVars())
	assert.Error(t, err)
	assert.Equal(t, "open_2", idx.Name(2))
	assert.Equal(t, "assign_1_2", idx.Name(idx.Assign(1, 2)))
}

func TestTripletsValidate(t *testing.T) {
	var tr ufl.Triplets
	tr.Add(0, 0, 1)
	tr.Add(0, 1, 2)
	tr.Add(1, 1, 3)
	require.NoError(t, tr.Validate(2, 2))

	assert.True(t, errors.Is(tr.Validate(1, 2), ufl.ErrDimensionMismatch))

	tr.Add(0, 1, 4)
	assert.True(t, errors.Is(tr.Validate(2, 2), ufl.ErrDuplicateEntry))

	broken := ufl.Triplets{Row: []int{0}, Col: []int{0, 1}, Val: []float64{1}}
	assert.True(t, errors.Is(broken.Validate(2, 2), ufl.ErrDimensionMismatch))
}

func TestTripletsCSR(t *testing.T) {
	var tr ufl.Triplets
	tr.Add(1, 2, -1)
	tr.Add(0, 0, 1)
	tr.Add(1, 0, 1)

	ind, val := tr.CSR(3)
	assert.Equal(t, [][]int32{{0}, {2, 0}, nil}, ind)
	assert.Equal(t, [][]float64{{1}, {-1, 1}, nil}, val)
}

func TestModelValidate(t *testing.T) {
	m, err := ufl.BuildModel([]float64{1, 1}, mat.NewDense(2, 2, nil))
	require.NoError(t, err)
	m.Sense = m.Sense[:1]
	assert.True(t, errors.Is(m.Validate(), ufl.ErrDimensionMismatch))
}

package ufl

import (
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Verbosity of the package logging, 1 (quiet) to 3.
var Verbosity = 2

func logf(lvl int, format string, args ...interface{}) {
	if lvl <= Verbosity {
		log.Printf(format, args...)
	}
}

// PoolSolution is one solver solution, X aligned with the model's columns.
type PoolSolution struct {
	Obj float64
	X   []float64
}

// Result is what a backend hands back: solutions best first and the best
// proven bound on the objective.
type Result struct {
	Status    Status
	Solutions []PoolSolution
	Bound     float64
}

// Solver runs an assembled model on an external MIP solver. Implementations
// must return a *StatusError rather than an empty Result when the solve ends
// without a solution.
type Solver interface {
	Name() string
	Solve(m *Model, p Params) (*Result, error)
}

// BoundFunc computes an independent lower bound for a model.
type BoundFunc func(m *Model) (float64, error)

type solveConfig struct {
	bound BoundFunc
	now   func() time.Time
}

type SolveOption func(*solveConfig)

func WithBound(f BoundFunc) SolveOption {
	return func(c *solveConfig) {
		c.bound = f
	}
}

// Evaluate returns the objective value of x.
func (m *Model) Evaluate(x []float64) float64 {
	return floats.Dot(m.Obj, x)
}

// objTol is the relative slack allowed between the solver's objective and
// the one recomputed from the decoded decision, on top of what the
// integrality tolerance can move the objective.
const objTol = 1e-6

// Solve validates the instance, assembles the model, runs it on s and
// decodes every pool solution. The returned Solution is also attached to
// inst.
func Solve(inst *Instance, s Solver, p Params, opts ...SolveOption) (*Solution, error) {
	cfg := solveConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := ValidateInstance(inst); err != nil {
		return nil, errors.Wrap(err, "invalid instance")
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid parameters")
	}

	facilities := inst.FacilitySet()
	cost, err := CostMatrix(inst.Stores, facilities, inst.UnitCost)
	if err != nil {
		return nil, err
	}
	fixed := inst.FixedCosts()
	model, err := BuildModel(fixed, cost)
	if err != nil {
		return nil, err
	}
	if err = model.Validate(); err != nil {
		return nil, err
	}
	logf(2, "Assembled model for %s: %d stores, %d facilities, %d columns, %d rows, %d nonzeros",
		inst.Name, len(inst.Stores), len(facilities), model.NumVars(), model.NumRows(), model.A.Len())

	sol := &Solution{
		RunID:   uuid.NewString(),
		Backend: s.Name(),
		System:  CurrentSysInfo(),
	}

	if cfg.bound != nil {
		if model.NumVars() > p.RelaxMaxVars {
			sol.Comment += "Relaxation bound skipped, model too large. "
		} else if lb, err := cfg.bound(model); err != nil {
			logf(1, "LP relaxation of %s failed: %s", inst.Name, err.Error())
			sol.Comment += "Relaxation bound failed: " + err.Error() + ". "
		} else {
			sol.RelaxBound = lb
		}
	}

	startTime := cfg.now()
	res, err := s.Solve(model, p)
	sol.Time = cfg.now().Sub(startTime).String()
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.Errorf("%s returned no result", s.Name())
	}
	if len(res.Solutions) == 0 {
		return nil, &StatusError{Status: res.Status}
	}
	logf(2, "---OPTIMIZATION DONE--- %s, %d pool solutions", res.Status, len(res.Solutions))

	slack := p.IntTol * floats.Norm(model.Obj, 1)
	decisions := make([]*Decision, 0, len(res.Solutions))
	for k, ps := range res.Solutions {
		d, err := DecodeTol(model.Index, ps.X, p.IntTol)
		if err != nil {
			return nil, errors.Wrapf(err, "pool solution %d", k)
		}
		recomputed := d.Cost(fixed, cost)
		if math.Abs(recomputed-ps.Obj) > slack+objTol*math.Max(1, math.Abs(recomputed)) {
			return nil, errors.Wrapf(ErrInconsistentResult, "pool solution %d: objective %v, decoded cost %v", k, ps.Obj, recomputed)
		}
		decisions = append(decisions, d)
		sol.Pool = append(sol.Pool, PoolEntry{Obj: recomputed, Open: d.OpenList(), Assignment: d.Assign})
	}

	best := decisions[0]
	sol.Status = res.Status
	sol.Optimal = res.Status.Optimal
	sol.Obj = sol.Pool[0].Obj
	sol.LBound = res.Bound
	sol.Open = best.OpenList()
	sol.Assignment = best.Assign
	sol.Frequency = SelectionFrequency(decisions)
	if !sol.Optimal {
		sol.Comment += "Stopped without proven optimality: " + res.Status.Name
	}

	inst.Solution = sol
	return sol, nil
}

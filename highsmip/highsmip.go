// Package highsmip runs facility-location models on the open-source HiGHS
// solver. HiGHS keeps no solution pool, so results hold a single solution.
package highsmip

import (
	"math"

	"git.solver4all.com/azaryc2s/ufl"
	"github.com/bartolsthoorn/gohighs/highs"
	"github.com/pkg/errors"
)

// kSolutionStatusFeasible of HiGHS' primal_solution_status info
const solutionStatusFeasible = 2

type Solver struct{}

func (Solver) Name() string {
	return ufl.BackendHighs
}

func (Solver) Solve(m *ufl.Model, p ufl.Params) (*ufl.Result, error) {
	s, err := highs.NewSolver()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err = configure(s, p); err != nil {
		return nil, err
	}
	if err = load(s, m); err != nil {
		return nil, err
	}
	if p.ModelFile != "" {
		if err = s.WriteModel(p.ModelFile); err != nil {
			return nil, errors.Wrapf(err, "writing %s", p.ModelFile)
		}
	}

	sol, err := s.Run()
	if err != nil {
		return nil, err
	}
	res := &ufl.Result{Status: status(sol.Status)}
	// a limit status counts as having a solution even without an incumbent
	primal, err := s.GetIntInfo("primal_solution_status")
	if err != nil || !hasIncumbent(sol.HasSolution(), primal) || len(sol.ColValues) != m.NumVars() {
		return nil, &ufl.StatusError{Status: res.Status}
	}
	res.Solutions = []ufl.PoolSolution{{Obj: sol.Objective, X: sol.ColValues}}
	if bound, err := s.GetFloatInfo("mip_dual_bound"); err == nil {
		res.Bound = bound
	} else {
		res.Bound = sol.Objective
	}
	return res, nil
}

func hasIncumbent(hasSolution bool, primalStatus int) bool {
	return hasSolution && primalStatus == solutionStatusFeasible
}

func status(s highs.ModelStatus) ufl.Status {
	return ufl.Status{Backend: ufl.BackendHighs, Code: int(s), Name: s.String(), Optimal: s.IsOptimal()}
}

func configure(s *highs.Solver, p ufl.Params) error {
	if err := s.SetBoolOption("output_flag", p.LogToConsole); err != nil {
		return err
	}
	if p.LogFile != "" {
		if err := s.SetStringOption("log_file", p.LogFile); err != nil {
			return err
		}
	}
	if err := s.SetStringOption("presolve", presolve(p.Presolve)); err != nil {
		return err
	}
	if p.TimeLimit > 0 {
		if err := s.SetFloatOption("time_limit", p.TimeLimit); err != nil {
			return err
		}
	}
	if err := s.SetFloatOption("mip_feasibility_tolerance", p.IntTol); err != nil {
		return err
	}
	if p.MIPGap > 0 {
		if err := s.SetFloatOption("mip_rel_gap", p.MIPGap); err != nil {
			return err
		}
	}
	if p.Threads > 0 {
		if err := s.SetIntOption("threads", p.Threads); err != nil {
			return err
		}
	}
	return nil
}

func presolve(level int) string {
	switch {
	case level == 0:
		return "off"
	case level < 0:
		return "choose"
	}
	return "on"
}

// load passes columns first, then one row at a time with the sense turned
// into row bounds.
func load(s *highs.Solver, m *ufl.Model) error {
	if err := s.SetMaximize(false); err != nil {
		return err
	}
	if err := s.AddVars(m.LB, m.UB); err != nil {
		return err
	}
	if err := s.SetColCosts(m.Obj); err != nil {
		return err
	}
	types := make([]highs.VariableType, m.NumVars())
	for col, t := range m.VType {
		if t != ufl.Continuous {
			types[col] = highs.Integer
		}
	}
	if err := s.SetIntegrality(types); err != nil {
		return err
	}

	ind32, val := m.A.CSR(m.NumRows())
	for r := 0; r < m.NumRows(); r++ {
		lower, upper, err := rowBounds(m.Sense[r], m.RHS[r])
		if err != nil {
			return errors.Wrapf(err, "row %d", r)
		}
		ind := make([]int, len(ind32[r]))
		for k, c := range ind32[r] {
			ind[k] = int(c)
		}
		if err = s.AddRow(lower, upper, ind, val[r]); err != nil {
			return errors.Wrapf(err, "adding row %d", r)
		}
	}
	return nil
}

func rowBounds(sense ufl.Sense, rhs float64) (lower, upper float64, err error) {
	switch sense {
	case ufl.Equal:
		return rhs, rhs, nil
	case ufl.GreaterEqual:
		return rhs, math.Inf(1), nil
	case ufl.LessEqual:
		return math.Inf(-1), rhs, nil
	}
	return 0, 0, errors.Errorf("unknown sense %q", sense)
}

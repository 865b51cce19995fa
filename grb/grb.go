/* Copyright 2021, Arkadiusz Zarychta, arkadiusz.zarychta@h-brs.de */
/* Copyright 2021, Gurobi Optimization, LLC */

// Package grb runs facility-location models on Gurobi.
package grb

import (
	"fmt"
	"log"

	"git.solver4all.com/azaryc2s/gorobi/gurobi"
	"git.solver4all.com/azaryc2s/ufl"
	"github.com/pkg/errors"
)

var statusNames = map[int32]string{
	1:  "LOADED",
	2:  "OPTIMAL",
	3:  "INFEASIBLE",
	4:  "INF_OR_UNBD",
	5:  "UNBOUNDED",
	6:  "CUTOFF",
	7:  "ITERATION_LIMIT",
	8:  "NODE_LIMIT",
	9:  "TIME_LIMIT",
	10: "SOLUTION_LIMIT",
	11: "INTERRUPTED",
	12: "NUMERIC",
	13: "SUBOPTIMAL",
	14: "INPROGRESS",
	15: "USER_OBJ_LIMIT",
}

func status(code int32) ufl.Status {
	name, ok := statusNames[code]
	if !ok {
		name = "UNKNOWN"
	}
	return ufl.Status{Backend: ufl.BackendGurobi, Code: int(code), Name: name, Optimal: code == gurobi.OPTIMAL}
}

type Solver struct{}

func (Solver) Name() string {
	return ufl.BackendGurobi
}

func (Solver) Solve(m *ufl.Model, p ufl.Params) (*ufl.Result, error) {
	// Create environment
	env, err := gurobi.LoadEnv(p.LogFile)
	if err != nil {
		return nil, errors.Wrap(err, "loading gurobi environment")
	}
	defer env.Free()
	if !p.LogToConsole {
		env.SetIntParam("LogToConsole", int32(0))
		defer env.SetIntParam("LogToConsole", int32(1))
	}

	model, err := env.NewModel("ufl", 0, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	defer model.Free()

	if err = load(model, m); err != nil {
		return nil, err
	}
	if err = configure(model, p); err != nil {
		return nil, err
	}
	if p.ModelFile != "" {
		if err = model.Write(p.ModelFile); err != nil {
			return nil, errors.Wrapf(err, "writing %s", p.ModelFile)
		}
	}

	// Optimize model
	if err = model.Optimize(); err != nil {
		return nil, err
	}
	return collect(model, m.NumVars())
}

func load(model *gurobi.Model, m *ufl.Model) error {
	if err := model.SetIntAttr(gurobi.INT_ATTR_MODELSENSE, gurobi.MINIMIZE); err != nil {
		return err
	}

	for col := 0; col < m.NumVars(); col++ {
		vtype, err := varType(m.VType[col])
		if err != nil {
			return err
		}
		err = model.AddVar(nil, nil, m.Obj[col], m.LB[col], m.UB[col], vtype, m.Index.Name(col))
		if err != nil {
			return errors.Wrapf(err, "adding %s", m.Index.Name(col))
		}
	}

	ind, val := m.A.CSR(m.NumRows())
	for r := 0; r < m.NumRows(); r++ {
		sense, err := constrSense(m.Sense[r])
		if err != nil {
			return err
		}
		name := fmt.Sprintf("r_%d", r)
		if r < len(m.RowNames) {
			name = m.RowNames[r]
		}
		if err = model.AddConstr(ind[r], val[r], sense, m.RHS[r], name); err != nil {
			return errors.Wrapf(err, "adding %s", name)
		}
	}
	return nil
}

func configure(model *gurobi.Model, p ufl.Params) error {
	if err := model.SetIntParam("Presolve", int32(p.Presolve)); err != nil {
		return err
	}
	if err := model.SetIntParam("PoolSolutions", int32(p.PoolSolutions)); err != nil {
		return err
	}
	if err := model.SetIntParam("PoolSearchMode", int32(p.PoolSearchMode)); err != nil {
		return err
	}
	if err := model.SetDblParam("IntFeasTol", p.IntTol); err != nil {
		return err
	}
	if p.Threads > 0 {
		if err := model.SetIntParam(gurobi.INT_PAR_THREADS, int32(p.Threads)); err != nil {
			return err
		}
	}
	if p.TimeLimit > 0 {
		if err := model.SetDblParam("TimeLimit", p.TimeLimit); err != nil {
			return err
		}
	}
	if p.MIPGap > 0 {
		if err := model.SetDblParam("MIPGap", p.MIPGap); err != nil {
			return err
		}
	}
	return nil
}

// collect reads the status, the bound and the whole solution pool; Gurobi
// keeps the pool sorted best first.
func collect(model *gurobi.Model, varCount int) (*ufl.Result, error) {
	optimstatus, err := model.GetIntAttr(gurobi.INT_ATTR_STATUS)
	if err != nil {
		return nil, errors.Wrap(err, "retrieving optimization status")
	}
	res := &ufl.Result{Status: status(optimstatus)}
	if optimstatus == gurobi.INF_OR_UNBD {
		log.Println("Model is infeasible or unbounded")
	}

	solcount, err := model.GetIntAttr(gurobi.INT_ATTR_SOLCOUNT)
	if err != nil {
		return nil, errors.Wrap(err, "retrieving solution count")
	}
	if solcount == 0 {
		return nil, &ufl.StatusError{Status: res.Status}
	}

	res.Bound, err = model.GetDblAttr(gurobi.DBL_ATTR_OBJBOUND)
	if err != nil {
		log.Printf("Couldn't retrieve the lower-bound-value: %s\n", err.Error())
	}

	for k := int32(0); k < solcount; k++ {
		if err = model.SetIntParam("SolutionNumber", k); err != nil {
			return nil, err
		}
		x, err := model.GetDblAttrArray("Xn", 0, int32(varCount))
		if err != nil {
			return nil, errors.Wrapf(err, "reading pool solution %d", k)
		}
		obj, err := model.GetDblAttr("PoolObjVal")
		if err != nil {
			return nil, errors.Wrapf(err, "reading objective of pool solution %d", k)
		}
		res.Solutions = append(res.Solutions, ufl.PoolSolution{Obj: obj, X: x})
	}
	return res, nil
}

func varType(t ufl.VarType) (int8, error) {
	switch t {
	case ufl.Binary:
		return gurobi.BINARY, nil
	case ufl.Integer:
		return gurobi.INTEGER, nil
	case ufl.Continuous:
		return gurobi.CONTINUOUS, nil
	}
	return 0, errors.Errorf("unknown variable type %q", t)
}

func constrSense(s ufl.Sense) (int8, error) {
	switch s {
	case ufl.Equal:
		return gurobi.EQUAL, nil
	case ufl.GreaterEqual:
		return gurobi.GREATER_EQUAL, nil
	case ufl.LessEqual:
		return gurobi.LESS_EQUAL, nil
	}
	return 0, errors.Errorf("unknown constraint sense %q", s)
}

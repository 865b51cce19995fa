/* Copyright 2021, Arkadiusz Zarychta, arkadiusz.zarychta@h-brs.de */
/* Copyright 2021, Gurobi Optimization, LLC */

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"git.solver4all.com/azaryc2s/ufl"
	"git.solver4all.com/azaryc2s/ufl/grb"
	"git.solver4all.com/azaryc2s/ufl/highsmip"
	"git.solver4all.com/azaryc2s/ufl/relax"
)

var (
	inputF   *string
	outputF  *string
	paramsF  *string
	backend  *string
	pool     *int
	withLB   *bool
	lpFile   *string
	logLvl   *int
	timeLim  *float64
	presolve *int
)

func main() {
	inputF = flag.String("input", "input.json", "Path to the input instance")
	outputF = flag.String("output", "", "Path to the output file. By default the input file will be overwritten adding the solution")
	paramsF = flag.String("params", "", "YAML file with solver parameters")
	backend = flag.String("backend", "", "Solver backend: gurobi or highs. Overrides the parameter file")
	pool = flag.Int("pool", 0, "Number of solutions to keep in the solution pool. Overrides the parameter file")
	presolve = flag.Int("presolve", -2, "Presolve level (-1 auto, 0 off, 1-2 on). Overrides the parameter file")
	timeLim = flag.Float64("tlim", 0, "Time limit in seconds. Overrides the parameter file")
	withLB = flag.Bool("relax", false, "Compute the LP-relaxation bound in pure Go before solving")
	lpFile = flag.String("lp", "", "Write the assembled model to this file (e.g. model.lp) before optimizing")
	logLvl = flag.Int("log", 2, "Level of the logging output. Higher value is more verbose. Range 1-3")

	flag.Parse()
	ufl.Verbosity = *logLvl

	p, err := ufl.LoadParams(*paramsF)
	if err != nil {
		log.Printf("At %s: %s\n", *paramsF, err.Error())
		os.Exit(1)
	}
	if *backend != "" {
		p.Backend = *backend
	}
	if *pool > 0 {
		p.PoolSolutions = *pool
	}
	if *presolve >= -1 {
		p.Presolve = *presolve
	}
	if *timeLim > 0 {
		p.TimeLimit = *timeLim
	}
	if *lpFile != "" {
		p.ModelFile = *lpFile
	}
	p.RelaxBound = p.RelaxBound || *withLB

	pInst, err := ufl.ReadInstance(*inputF)
	if err != nil {
		log.Printf("At %s: %s\n", *inputF, err.Error())
		os.Exit(1)
	}

	var s ufl.Solver
	switch p.Backend {
	case ufl.BackendHighs:
		s = highsmip.Solver{}
	default:
		s = grb.Solver{}
	}
	var opts []ufl.SolveOption
	if p.RelaxBound {
		opts = append(opts, ufl.WithBound(relax.Bound))
	}

	sol, err := ufl.Solve(pInst, s, p, opts...)
	if err != nil {
		if st, ok := ufl.IsStatusError(err); ok {
			fmt.Printf("Model for %s has no solution: %s\n", *inputF, st)
		}
		log.Printf("At %s: %s\n", *inputF, err.Error())
		os.Exit(1)
	}

	if sol.Status.Optimal {
		sol.Comment += fmt.Sprintf("Optimal with %d pool solutions", len(sol.Pool))
	}
	fmt.Printf("Opened %d of %d facilities at cost %.2f (bound %.2f): %v\n",
		len(sol.Open), len(pInst.FacilitySet()), sol.Obj, sol.LBound, sol.Open)

	fileName := *outputF
	if fileName == "" {
		fileName = *inputF
	}
	if err = ufl.WriteInstance(fileName, pInst); err != nil {
		log.Printf("At %s: %s\n", fileName, err.Error())
		os.Exit(1)
	}
}

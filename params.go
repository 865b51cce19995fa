package ufl

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	BackendGurobi = "gurobi"
	BackendHighs  = "highs"
)

// Params are the solver options handed to a backend alongside the model.
type Params struct {
	Backend string `yaml:"backend"`
	// Presolve mirrors Gurobi's parameter: -1 automatic, 0 off, 1..2 on.
	Presolve      int `yaml:"presolve"`
	PoolSolutions int `yaml:"pool_solutions"`
	// PoolSearchMode mirrors Gurobi's: 0 keeps what is found on the way, 2
	// searches for the PoolSolutions best solutions.
	PoolSearchMode int `yaml:"pool_search_mode"`
	// IntTol is the integrality tolerance given to the solver and used when
	// reading its vectors back.
	IntTol        float64 `yaml:"int_tol"`
	TimeLimit     float64 `yaml:"time_limit"`
	MIPGap        float64 `yaml:"mip_gap"`
	Threads       int     `yaml:"threads"`
	LogFile       string  `yaml:"log_file"`
	LogToConsole  bool    `yaml:"log_to_console"`
	// ModelFile, when set, receives the assembled model before optimizing.
	ModelFile string `yaml:"model_file"`
	// RelaxBound enables the pure-Go LP relaxation bound up to RelaxMaxVars columns.
	RelaxBound   bool `yaml:"relax_bound"`
	RelaxMaxVars int  `yaml:"relax_max_vars"`
}

func DefaultParams() Params {
	return Params{
		Backend:        BackendGurobi,
		Presolve:       0,
		PoolSolutions:  10,
		PoolSearchMode: 2,
		IntTol:         DefaultIntTol,
		LogFile:        "ufl.log",
		RelaxMaxVars:   1000,
	}
}

// LoadParams reads a YAML parameter file on top of the defaults.
func LoadParams(fileName string) (Params, error) {
	p := DefaultParams()
	if fileName == "" {
		return p, nil
	}
	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		return p, err
	}
	if err = yaml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrapf(err, "parsing %s", fileName)
	}
	return p, p.Validate()
}

func (p Params) Validate() error {
	switch {
	case p.Backend != BackendGurobi && p.Backend != BackendHighs:
		return errors.Errorf("unknown backend %q", p.Backend)
	case p.Presolve < -1 || p.Presolve > 2:
		return errors.Errorf("presolve %d outside [-1,2]", p.Presolve)
	case p.PoolSolutions < 1:
		return errors.Errorf("pool_solutions %d must be positive", p.PoolSolutions)
	case p.PoolSearchMode < 0 || p.PoolSearchMode > 2:
		return errors.Errorf("pool_search_mode %d outside [0,2]", p.PoolSearchMode)
	case !(p.IntTol > 0) || p.IntTol >= 0.5:
		return errors.Errorf("int_tol %v outside (0,0.5)", p.IntTol)
	case p.TimeLimit < 0 || p.MIPGap < 0 || p.Threads < 0:
		return errors.New("time_limit, mip_gap and threads must not be negative")
	}
	return nil
}

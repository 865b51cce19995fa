package ufl

const TypeUFL = "UFL"

// Location is one row of the input table. Stores carry a Demand, facility
// candidates a FixedCost; when an instance lists no facilities the stores are
// used for both.
type Location struct {
	Name      string  `json:"name,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Demand    float64 `json:"demand"`
	FixedCost float64 `json:"fixed_cost"`
}

type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`

	UnitCost   float64    `json:"unit_cost"`
	Stores     []Location `json:"stores"`
	Facilities []Location `json:"facilities,omitempty"`

	Solution *Solution `json:"solution,omitempty"`
}

// FacilitySet returns the facility candidates, falling back to the stores.
func (inst *Instance) FacilitySet() []Location {
	if len(inst.Facilities) == 0 {
		return inst.Stores
	}
	return inst.Facilities
}

func (inst *Instance) FixedCosts() []float64 {
	fac := inst.FacilitySet()
	fixed := make([]float64, len(fac))
	for j, f := range fac {
		fixed[j] = f.FixedCost
	}
	return fixed
}

type Solution struct {
	RunID      string  `json:"run_id"`
	Backend    string  `json:"backend"`
	Status     Status  `json:"status"`
	Obj        float64 `json:"obj"`
	LBound     float64 `json:"lbound"`
	RelaxBound float64 `json:"relax_bound,omitempty"`
	Optimal    bool    `json:"optimal"`

	// Open lists the opened facilities, Assignment the facility serving each store.
	Open       []int       `json:"open"`
	Assignment []int       `json:"assignment"`
	Pool       []PoolEntry `json:"pool,omitempty"`
	Frequency  []float64   `json:"frequency,omitempty"`

	Time    string  `json:"time"`
	System  SysInfo `json:"system"`
	Comment string  `json:"comment"`
}

// PoolEntry is one decoded member of the solver's solution pool.
type PoolEntry struct {
	Obj        float64 `json:"obj"`
	Open       []int   `json:"open"`
	Assignment []int   `json:"assignment"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}

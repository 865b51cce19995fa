package ufl

import (
	"math"

	"github.com/pkg/errors"
)

// Verify recomputes the cost of the solution stored in inst from its
// coordinates and checks that the assignment only uses opened facilities.
func Verify(inst *Instance) (float64, error) {
	sol := inst.Solution
	if sol == nil {
		return 0, errors.New("instance has no solution")
	}
	facs := inst.FacilitySet()
	if len(sol.Assignment) != len(inst.Stores) {
		return 0, errors.Wrapf(ErrDimensionMismatch, "%d assignments for %d stores", len(sol.Assignment), len(inst.Stores))
	}
	cost, err := CostMatrix(inst.Stores, facs, inst.UnitCost)
	if err != nil {
		return 0, err
	}

	d := &Decision{Open: make([]bool, len(facs)), Assign: sol.Assignment}
	for _, j := range sol.Open {
		if j < 0 || j >= len(facs) {
			return 0, errors.Wrapf(ErrInconsistentResult, "opened facility %d does not exist", j)
		}
		d.Open[j] = true
	}
	for i, j := range sol.Assignment {
		if j < 0 || j >= len(facs) || !d.Open[j] {
			return 0, errors.Wrapf(ErrInconsistentResult, "store %d assigned to closed facility %d", i, j)
		}
	}
	total := d.Cost(inst.FixedCosts(), cost)
	if math.Abs(total-sol.Obj) > 1e-4*math.Max(1, math.Abs(total)) {
		return total, errors.Wrapf(ErrInconsistentResult, "recomputed cost %.4f, reported %.4f", total, sol.Obj)
	}
	return total, nil
}

// Gap is the relative distance in percent between obj and a lower bound.
func Gap(obj, bound float64) float64 {
	if obj == 0 {
		return 0
	}
	return 100.0 * (obj - bound) / math.Abs(obj)
}

// PlotRow is the per-facility attribute table handed to map plotting.
type PlotRow struct {
	Name      string
	Lat       float64
	Lon       float64
	Selected  bool
	Frequency float64
	Served    int
}

func PlotTable(inst *Instance) []PlotRow {
	facs := inst.FacilitySet()
	rows := make([]PlotRow, len(facs))
	for j, f := range facs {
		rows[j] = PlotRow{Name: f.Name, Lat: f.Lat, Lon: f.Lon}
	}
	sol := inst.Solution
	if sol == nil {
		return rows
	}
	for _, j := range sol.Open {
		if j >= 0 && j < len(rows) {
			rows[j].Selected = true
		}
	}
	for _, j := range sol.Assignment {
		if j >= 0 && j < len(rows) {
			rows[j].Served++
		}
	}
	for j, f := range sol.Frequency {
		if j < len(rows) {
			rows[j].Frequency = f
		}
	}
	return rows
}

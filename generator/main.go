package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"git.solver4all.com/azaryc2s/ufl"
)

var stores ufl.ArrayIntFlags
var facilities ufl.ArrayIntFlags
var unitCosts ufl.ArrayFloatFlags
var demands ufl.ArrayStringFlags

func main() {
	flag.Var(&stores, "n", "List of number of stores")
	flag.Var(&facilities, "m", "List of number of facility candidates. 0 (default) lets the stores double as candidates")
	flag.Var(&unitCosts, "unit", "List of transport costs per distance unit and demand unit")
	flag.Var(&demands, "demand", "List of demand-generation strategies: ONE, RNG or POP")
	name := flag.String("name", "ufl", "Name for the instance")
	count := flag.Int("count", 10, "Number of instances per combination")
	minLat := flag.Float64("minlat", 47.3, "Southern edge of the bounding box")
	maxLat := flag.Float64("maxlat", 55.0, "Northern edge of the bounding box")
	minLon := flag.Float64("minlon", 5.9, "Western edge of the bounding box")
	maxLon := flag.Float64("maxlon", 15.0, "Eastern edge of the bounding box")
	fixedTo := flag.Float64("fixed", 10000, "Max fixed cost of opening a facility")
	seed := flag.Int64("seed", 0, "Random seed. 0 (default) seeds from the clock")

	flag.Parse()

	if len(stores) == 0 {
		log.Fatal("No store counts given, use -n")
	}
	if len(facilities) == 0 {
		facilities = ufl.ArrayIntFlags{0}
	}
	if len(unitCosts) == 0 {
		unitCosts = ufl.ArrayFloatFlags{1}
	}
	if len(demands) == 0 {
		demands = ufl.ArrayStringFlags{"RNG"}
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	point := func() ufl.Location {
		return ufl.Location{
			Lat: round(*minLat+rng.Float64()*(*maxLat-*minLat), 5),
			Lon: round(*minLon+rng.Float64()*(*maxLon-*minLon), 5),
		}
	}

	for l := 0; l < *count; l++ {
		for _, n := range stores {
			for _, m := range facilities {
				locs := make([]ufl.Location, n)
				for i := range locs {
					locs[i] = point()
					locs[i].Name = fmt.Sprintf("S%d", i)
				}
				var facs []ufl.Location
				if m == 0 {
					for i := range locs {
						locs[i].FixedCost = round(*fixedTo*rng.Float64(), 2)
					}
				} else {
					facs = make([]ufl.Location, m)
					for j := range facs {
						facs[j] = point()
						facs[j].Name = fmt.Sprintf("F%d", j)
						facs[j].FixedCost = round(*fixedTo*rng.Float64(), 2)
					}
				}
				for _, u := range unitCosts {
					for _, d := range demands {
						for i := range locs {
							locs[i].Demand = demand(rng, d)
						}
						instName := fmt.Sprintf("%s_%d_%d_%.2f_%s_%d", *name, n, m, u, d, l)
						comment := fmt.Sprintf("%s instance Nr. %d with %d stores, %d candidates, unit cost %.2f and demand generated as %s (seed %d)", *name, l, n, m, u, d, *seed)
						inst := &ufl.Instance{
							Name:       instName,
							Comment:    comment,
							Type:       ufl.TypeUFL,
							UnitCost:   u,
							Stores:     append([]ufl.Location(nil), locs...),
							Facilities: facs,
						}
						if err := ufl.WriteInstance(fmt.Sprintf("%s.json", instName), inst); err != nil {
							log.Fatal(err)
						}
					}
				}
			}
		}
	}
}

func demand(rng *rand.Rand, strategy string) float64 {
	switch strategy {
	case "ONE":
		return 1
	case "POP":
		// a few large towns, many small ones
		return round(math.Exp(rng.NormFloat64()*1.2)*100, 0)
	default:
		return float64(1 + rng.Intn(100))
	}
}

func round(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}

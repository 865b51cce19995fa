package ufl

import (
	"encoding/json"
	"io/ioutil"
	"math"
	"regexp"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// EarthRadiusKm is the equatorial WGS84 radius, the usual haversine default.
const EarthRadiusKm = 6378.137

// Haversine returns the great-circle distance between two locations.
func Haversine(a, b Location, radius float64) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * radius * math.Asin(math.Min(1, math.Sqrt(h)))
}

type costConfig struct {
	radius float64
}

type CostOption func(*costConfig)

// WithRadius overrides the sphere radius; distances come out in its unit.
func WithRadius(r float64) CostOption {
	return func(c *costConfig) {
		c.radius = r
	}
}

// CostMatrix builds the N×M transport cost matrix. Entry (i,j) is the
// distance from store i to facility j times unitCost times the demand of
// store i, so the result is row-scaled and not symmetric even when stores and
// facilities coincide.
func CostMatrix(stores, facilities []Location, unitCost float64, opts ...CostOption) (*mat.Dense, error) {
	cfg := costConfig{radius: EarthRadiusKm}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(stores) == 0 || len(facilities) == 0 {
		return nil, ErrEmpty
	}
	if math.IsNaN(unitCost) || math.IsInf(unitCost, 0) || unitCost < 0 {
		return nil, errors.Wrapf(ErrInvalidCost, "unit cost %v", unitCost)
	}
	if !(cfg.radius > 0) || math.IsInf(cfg.radius, 0) {
		return nil, errors.Wrapf(ErrInvalidCost, "radius %v", cfg.radius)
	}
	for i, s := range stores {
		if err := ValidateLocation(s); err != nil {
			return nil, errors.Wrapf(err, "store %d", i)
		}
		if math.IsNaN(s.Demand) || math.IsInf(s.Demand, 0) || s.Demand < 0 {
			return nil, errors.Wrapf(ErrInvalidDemand, "store %d: %v", i, s.Demand)
		}
	}
	for j, f := range facilities {
		if err := ValidateLocation(f); err != nil {
			return nil, errors.Wrapf(err, "facility %d", j)
		}
	}

	n, m := len(stores), len(facilities)
	cost := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			cost.Set(i, j, Haversine(stores[i], facilities[j], cfg.radius)*unitCost*stores[i].Demand)
		}
	}
	return cost, nil
}

func ValidateLocation(l Location) error {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lon) || math.IsInf(l.Lat, 0) || math.IsInf(l.Lon, 0) {
		return errors.Wrapf(ErrInvalidCoordinate, "(%v, %v)", l.Lat, l.Lon)
	}
	if l.Lat < -90 || l.Lat > 90 || l.Lon < -180 || l.Lon > 180 {
		return errors.Wrapf(ErrInvalidCoordinate, "(%v, %v) out of range", l.Lat, l.Lon)
	}
	return nil
}

// ValidateInstance checks everything BuildModel and CostMatrix rely on, so
// malformed input fails before any solver is touched.
func ValidateInstance(inst *Instance) error {
	if len(inst.Stores) == 0 || len(inst.FacilitySet()) == 0 {
		return ErrEmpty
	}
	for j, f := range inst.FacilitySet() {
		if math.IsNaN(f.FixedCost) || math.IsInf(f.FixedCost, 0) || f.FixedCost < 0 {
			return errors.Wrapf(ErrInvalidCost, "fixed cost of facility %d: %v", j, f.FixedCost)
		}
	}
	_, err := CostMatrix(inst.Stores, inst.FacilitySet(), inst.UnitCost)
	return err
}

func ReadInstance(fileName string) (*Instance, error) {
	instStr, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	inst := &Instance{}
	if err = json.Unmarshal(instStr, inst); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", fileName)
	}
	return inst, nil
}

func WriteInstance(fileName string, inst *Instance) error {
	jsonInst, err := json.MarshalIndent(inst, "", "\t")
	if err != nil {
		return err
	}
	jsonInst = []byte(SanitizeJsonArrayLineBreaks(string(jsonInst)))
	return ioutil.WriteFile(fileName, jsonInst, 0644)
}

const jsonNumber = `-?[0-9]+(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?`

// numberArrays matches either a whole string literal, left as it is, or an
// array holding nothing but numbers.
var numberArrays = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|\[\s*` + jsonNumber + `(?:\s*,\s*` + jsonNumber + `)*\s*\]`)

var whitespace = regexp.MustCompile(`\s+`)

// SanitizeJsonArrayLineBreaks puts number arrays of indented JSON on one line.
func SanitizeJsonArrayLineBreaks(json string) string {
	return numberArrays.ReplaceAllStringFunc(json, func(m string) string {
		if m[0] == '"' {
			return m
		}
		return whitespace.ReplaceAllString(m, "")
	})
}

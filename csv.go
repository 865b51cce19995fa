package ufl

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadLocationsCSV parses a location table with a header row. lat and lon
// are required columns; name, demand and fixed_cost are optional and may
// come in any order.
func ReadLocationsCSV(r io.Reader) ([]Location, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	cols := map[string]int{}
	for k, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = k
	}
	for _, req := range []string{"lat", "lon"} {
		if _, ok := cols[req]; !ok {
			return nil, errors.Errorf("missing column %q", req)
		}
	}

	var locs []Location
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		field := func(name string) (float64, error) {
			k, ok := cols[name]
			if !ok || strings.TrimSpace(rec[k]) == "" {
				return 0, nil
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[k]), 64)
			return v, errors.Wrapf(err, "line %d, column %s", line, name)
		}
		l := Location{}
		if k, ok := cols["name"]; ok {
			l.Name = rec[k]
		}
		if l.Lat, err = field("lat"); err != nil {
			return nil, err
		}
		if l.Lon, err = field("lon"); err != nil {
			return nil, err
		}
		if l.Demand, err = field("demand"); err != nil {
			return nil, err
		}
		if l.FixedCost, err = field("fixed_cost"); err != nil {
			return nil, err
		}
		if err = ValidateLocation(l); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		locs = append(locs, l)
	}
	if len(locs) == 0 {
		return nil, ErrEmpty
	}
	return locs, nil
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"git.solver4all.com/azaryc2s/ufl"
)

func main() {
	storesF := flag.String("stores", "", "CSV table of stores (name,lat,lon,demand[,fixed_cost])")
	facilitiesF := flag.String("facilities", "", "Optional CSV table of facility candidates (name,lat,lon,fixed_cost). Defaults to the stores")
	unit := flag.Float64("unit", 1, "Transport cost per distance unit and demand unit")
	comment := flag.String("comment", "", "Comment for the instance")
	outputF := flag.String("output", "", "Path to the instance file. Defaults to the stores file with a .json extension")
	flag.Parse()

	if *storesF == "" {
		log.Fatal("No store table given, use -stores")
	}
	stores, err := readTable(*storesF)
	if err != nil {
		log.Fatalf("At %s: %s\n", *storesF, err.Error())
	}
	var facilities []ufl.Location
	if *facilitiesF != "" {
		if facilities, err = readTable(*facilitiesF); err != nil {
			log.Fatalf("At %s: %s\n", *facilitiesF, err.Error())
		}
	}

	name := strings.TrimSuffix(filepath.Base(*storesF), filepath.Ext(*storesF))
	inst := &ufl.Instance{
		Name:       name,
		Comment:    fmt.Sprintf("%s | converted from %s", *comment, filepath.Base(*storesF)),
		Type:       ufl.TypeUFL,
		UnitCost:   *unit,
		Stores:     stores,
		Facilities: facilities,
	}
	if err = ufl.ValidateInstance(inst); err != nil {
		log.Fatalf("At %s: %s\n", *storesF, err.Error())
	}

	fileName := *outputF
	if fileName == "" {
		fileName = strings.TrimSuffix(*storesF, filepath.Ext(*storesF)) + ".json"
	}
	if err = ufl.WriteInstance(fileName, inst); err != nil {
		log.Fatalf("At %s: %s\n", fileName, err.Error())
	}
	fmt.Println(fileName)
}

func readTable(fileName string) ([]ufl.Location, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ufl.ReadLocationsCSV(file)
}

package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"

	"git.solver4all.com/azaryc2s/ufl"
)

func main() {
	plot := flag.Bool("plot", false, "Print the per-facility plotting table (lat, lon, selected, frequency) instead of the summary")
	flag.Parse()
	if flag.NArg() < 1 {
		log.Printf("No arguments passed!")
		return
	}
	dirName := flag.Arg(0)
	dir, err := ioutil.ReadDir(dirName)
	if err != nil {
		log.Printf("Couldn't open directory %s: %s\n", dirName, err.Error())
		return
	}
	if *plot {
		fmt.Printf("Instance,Facility,Lat,Lon,Selected,Frequency,Served\n")
	} else {
		fmt.Printf("Name,Backend,Status,Optimal,Time,Obj,LBound,Gap,RelaxGap,Stores,Facilities,Opened,Valid,Comment\n")
	}
	for _, f := range dir {
		if !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		inst, err := ufl.ReadInstance(filepath.Join(dirName, f.Name()))
		if err != nil {
			log.Printf("Couldn't read %s: %s\n", f.Name(), err.Error())
			return
		}
		if *plot {
			for _, r := range ufl.PlotTable(inst) {
				fmt.Printf("%s,%s,%.5f,%.5f,%t,%.4f,%d\n", inst.Name, r.Name, r.Lat, r.Lon, r.Selected, r.Frequency, r.Served)
			}
			continue
		}

		var sol ufl.Solution
		if inst.Solution != nil {
			sol = *inst.Solution
		}
		valid := true
		if _, err = ufl.Verify(inst); err != nil {
			valid = false
			sol.Comment += fmt.Sprintf("ANALYZER: Error = %s", err.Error())
		}
		relaxGap := ""
		if sol.RelaxBound != 0 {
			relaxGap = fmt.Sprintf("%.4f", ufl.Gap(sol.Obj, sol.RelaxBound))
		}
		fmt.Printf("%s,%s,%s,%t,%s,%.4f,%.4f,%.4f,%s,%d,%d,%d,%t,%s\n",
			inst.Name, sol.Backend, sol.Status.Name, sol.Optimal, sol.Time, sol.Obj, sol.LBound,
			ufl.Gap(sol.Obj, sol.LBound), relaxGap, len(inst.Stores), len(inst.FacilitySet()),
			len(sol.Open), valid, strings.ReplaceAll(sol.Comment, ",", ";"))
	}
}

// ttinfo prints a quick summary of a traveltime survey file: sensor and
// record counts, shot coverage, offset and traveltime ranges. Useful to sanity
// check a dataset before plotting it.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/danielpflieger/gimli/src/survey"
)

func main() {
	var file string
	flag.StringVar(&file, "data", "", "path to a traveltime survey file (unified format)")
	flag.Parse()
	if file == "" {
		fmt.Fprintln(os.Stderr, "ttinfo: -data is required")
		os.Exit(2)
	}

	data, err := survey.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sensors: %d\n", data.SensorCount())
	fmt.Printf("Records: %d\n", data.Size())

	s, err := data.Get("s")
	if err == nil {
		counts := map[int]int{}
		for _, v := range s {
			counts[int(v)]++
		}
		shots := make([]int, 0, len(counts))
		for k := range counts {
			shots = append(shots, k)
		}
		sort.Ints(shots)
		fmt.Printf("Shots: %d\n", len(shots))
		for _, sh := range shots {
			x := data.SensorPosition(sh)[0]
			fmt.Printf("  shot %d (x=%g): %d picks\n", sh, x, counts[sh])
		}
	}

	if off, err := survey.ShotReceiverDistances(data, true); err == nil && len(off) > 0 {
		fmt.Printf("Offset range: %g .. %g m\n", floats.Min(off), floats.Max(off))
	}
	if tt, err := data.Get("t"); err == nil && len(tt) > 0 {
		fmt.Printf("Traveltime range: %g .. %g s\n", floats.Min(tt), floats.Max(tt))
	}
}

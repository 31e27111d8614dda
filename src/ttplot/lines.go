package ttplot

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/danielpflieger/gimli/src/survey"
)

// DrawLines loads a whitespace-delimited text file of (x, z) rows and draws it
// as solid black lines. step=1 draws the full polyline; step=2 draws
// disconnected two-point segments, dropping an odd trailing row. Other step
// values draw nothing; that gap is inherited behavior and kept as-is.
func DrawLines(sf *Surface, filename string, step int) error {
	xs, zs, err := loadXZ(filename)
	if err != nil {
		return err
	}
	black := chart.Style{StrokeWidth: 1.5, StrokeColor: chart.ColorBlack}
	switch step {
	case 1:
		sf.Plot(xs, zs, black, "")
	case 2:
		for i := 0; i+1 < len(xs); i += 2 {
			sf.Plot(xs[i:i+2], zs[i:i+2], black, "")
		}
	default:
		survey.Warnf("DrawLines: step=%d draws nothing (only 1 and 2 are handled)", step)
	}
	return nil
}

// loadXZ parses two-column numeric rows.
func loadXZ(filename string) (xs, zs []float64, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("ttplot: %s:%d: want 2 columns, got %d", filename, lineNo, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("ttplot: %s:%d: %w", filename, lineNo, err)
		}
		z, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("ttplot: %s:%d: %w", filename, lineNo, err)
		}
		xs = append(xs, x)
		zs = append(zs, z)
	}
	return xs, zs, sc.Err()
}

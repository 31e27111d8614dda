package survey

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

// Load reads a traveltime survey from the plain-text unified data format:
//
//	<sensorCount> [# comment]
//	# x y z
//	<x> <y> <z>        (one row per sensor, 2 columns mean x z)
//	<dataCount> [# comment]
//	# s g t [...]
//	<row per record>
//
// Sensor indices under the "s" and "g" tokens are 1-based on disk and stored
// 0-based in the container.
func Load(filename string) (*DataContainer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	next := func() (string, bool) {
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	line, ok := next()
	if !ok {
		return nil, fmt.Errorf("survey: %s: empty file", filename)
	}
	nSensors, err := leadingCount(line)
	if err != nil {
		return nil, fmt.Errorf("survey: %s: sensor count: %w", filename, err)
	}

	data := NewDataContainer()
	for i := 0; i < nSensors; {
		line, ok = next()
		if !ok {
			return nil, fmt.Errorf("survey: %s: expected %d sensors, file ended after %d", filename, nSensors, i)
		}
		if strings.HasPrefix(line, "#") {
			continue // column header
		}
		p, err := parsePosition(line)
		if err != nil {
			return nil, fmt.Errorf("survey: %s: sensor %d: %w", filename, i+1, err)
		}
		data.AppendSensor(p)
		i++
	}

	line, ok = next()
	if !ok {
		return nil, fmt.Errorf("survey: %s: missing data count", filename)
	}
	nData, err := leadingCount(line)
	if err != nil {
		return nil, fmt.Errorf("survey: %s: data count: %w", filename, err)
	}

	line, ok = next()
	if !ok || !strings.HasPrefix(line, "#") {
		return nil, fmt.Errorf("survey: %s: missing token header line", filename)
	}
	tokens := strings.Fields(strings.TrimPrefix(line, "#"))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("survey: %s: token header names no columns", filename)
	}

	cols := make([][]float64, len(tokens))
	for i := range cols {
		cols[i] = make([]float64, 0, nData)
	}
	for i := 0; i < nData; i++ {
		line, ok = next()
		if !ok {
			return nil, fmt.Errorf("survey: %s: expected %d records, file ended after %d", filename, nData, i)
		}
		fields := strings.Fields(line)
		if len(fields) < len(tokens) {
			return nil, fmt.Errorf("survey: %s: record %d has %d fields, want %d", filename, i+1, len(fields), len(tokens))
		}
		for j := range tokens {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, fmt.Errorf("survey: %s: record %d token %q: %w", filename, i+1, tokens[j], err)
			}
			cols[j] = append(cols[j], v)
		}
	}

	data.Resize(nData)
	for j, tok := range tokens {
		if tok == "s" || tok == "g" {
			for i := range cols[j] {
				cols[j][i] -= 1 // file is 1-based
			}
		}
		if err := data.Set(tok, cols[j]); err != nil {
			return nil, fmt.Errorf("survey: %s: %w", filename, err)
		}
	}
	if data.Has("s") && data.Has("g") {
		if err := data.CheckIndices(0); err != nil {
			return nil, fmt.Errorf("survey: %s: %w", filename, err)
		}
	}
	return data, nil
}

// Save writes the container in the unified data format, shifting "s" and "g"
// back to 1-based on disk.
func Save(data *DataContainer, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "%d # shot/geophone points\n", data.SensorCount())
	fmt.Fprintln(w, "# x y z")
	for _, p := range data.SensorPositions() {
		fmt.Fprintf(w, "%g %g %g\n", p[0], p[1], p[2])
	}

	tokens := canonicalTokenOrder(data.Tokens())
	fmt.Fprintf(w, "%d # measurements\n", data.Size())
	fmt.Fprintf(w, "# %s\n", strings.Join(tokens, " "))
	for i := 0; i < data.Size(); i++ {
		fields := make([]string, len(tokens))
		for j, tok := range tokens {
			col, err := data.Get(tok)
			if err != nil {
				return err
			}
			v := col[i]
			if tok == "s" || tok == "g" {
				v += 1
			}
			fields[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		fmt.Fprintln(w, strings.Join(fields, " "))
	}
	return w.Flush()
}

// canonicalTokenOrder puts s, g, t first and the rest alphabetically.
func canonicalTokenOrder(tokens []string) []string {
	lead := []string{"s", "g", "t"}
	seen := map[string]bool{}
	out := make([]string, 0, len(tokens))
	for _, l := range lead {
		for _, t := range tokens {
			if t == l {
				out = append(out, t)
				seen[t] = true
			}
		}
	}
	rest := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			rest = append(rest, t)
		}
	}
	for i := 0; i < len(rest); i++ {
		for j := i + 1; j < len(rest); j++ {
			if rest[j] < rest[i] {
				rest[i], rest[j] = rest[j], rest[i]
			}
		}
	}
	return append(out, rest...)
}

func leadingCount(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("blank count line")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

func parsePosition(line string) (vec3d.T, error) {
	fields := strings.Fields(line)
	vals := make([]float64, 0, 3)
	for _, f := range fields {
		if strings.HasPrefix(f, "#") {
			break
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vec3d.T{}, err
		}
		vals = append(vals, v)
	}
	switch len(vals) {
	case 2:
		// 2D profile: columns are x and z
		return vec3d.T{vals[0], 0, vals[1]}, nil
	case 3:
		return vec3d.T{vals[0], vals[1], vals[2]}, nil
	default:
		return vec3d.T{}, fmt.Errorf("position row has %d columns, want 2 or 3", len(vals))
	}
}
